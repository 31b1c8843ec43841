package handler

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"unicode/utf8"
)

const (
	maxURLLength      = 2048
	minPasswordLength = 8
	// bcrypt refuses anything longer.
	maxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateURL(rawURL string) error {
	if rawURL == "" {
		return errors.New("url is required")
	}

	if len(rawURL) > maxURLLength {
		return errors.New("url exceeds maximum length of 2048 characters")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("URL scheme must be http or https")
	}

	if parsed.Host == "" {
		return errors.New("URL must have a host")
	}

	return nil
}

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func isStrongPassword(password string) bool {
	return utf8.RuneCountInString(password) >= minPasswordLength
}

func isHashablePassword(password string) bool {
	return len(password) <= maxPasswordBytes
}

// parseUserID accepts any integer. Ids that match no row are left for
// storage to report, so only non-numeric text is rejected here.
func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("user id must be an integer")
	}
	return id, nil
}
