package utils

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// ValidateResourceURL checks that a resource URL is an absolute http or
// https URL.
func ValidateResourceURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must start with http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("url is missing a host")
	}
	return nil
}

// ValidatePrivateKey checks that a string is a 32-byte hex-encoded private
// key, with or without a 0x prefix.
func ValidatePrivateKey(key string) error {
	key = strings.TrimPrefix(key, "0x")
	if key == "" {
		return fmt.Errorf("private key cannot be empty")
	}

	raw, err := hex.DecodeString(key)
	if err != nil {
		return fmt.Errorf("private key must be hex encoded")
	}
	if len(raw) != 32 {
		return fmt.Errorf("private key must be 32 bytes, got %d", len(raw))
	}
	return nil
}

// Output formats the parse service can produce.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ValidateOutputFormat checks that format names a supported output format.
func ValidateOutputFormat(format string) error {
	switch format {
	case FormatJSON, FormatMarkdown:
		return nil
	default:
		return fmt.Errorf("format must be either %q or %q", FormatJSON, FormatMarkdown)
	}
}
