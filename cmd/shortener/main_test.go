package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_ServeIsDefault(t *testing.T) {
	root := newRootCmd()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	require.NotNil(t, root.RunE)

	assert.NotNil(t, root.PersistentFlags().Lookup("config"), "config flag reaches subcommands")
	assert.NotNil(t, serve.InheritedFlags().Lookup("config"))
}
