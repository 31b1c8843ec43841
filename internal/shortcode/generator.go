package shortcode

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is the full set of ASCII letters and digits.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the code length used when none is configured.
const DefaultLength = 6

// Generator generates random short codes.
type Generator struct {
	length int
	max    *big.Int
}

// NewGenerator creates a generator producing codes of the given length.
// A non-positive length falls back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{
		length: length,
		max:    big.NewInt(int64(len(Alphabet))),
	}
}

// Length reports the length of generated codes.
func (g *Generator) Length() int {
	return g.length
}

// Generate creates a new random short code using crypto/rand.
func (g *Generator) Generate() string {
	b := make([]byte, g.length)
	for i := range b {
		n, err := rand.Int(rand.Reader, g.max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b)
}

// Valid reports whether code has the generator's length and alphabet.
func (g *Generator) Valid(code string) bool {
	if len(code) != g.length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
