package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input limits accepted by the CLI and API.
const (
	MaxTextLength    = 64 * 1024
	MaxKeywordLength = 256
	MaxKeywords      = 32
)

// ValidateText checks free text sent to the completion service or the
// relation parser. Newlines and tabs are allowed; other control characters
// are not.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "text cannot be empty")
	}
	if len(text) > MaxTextLength {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", MaxTextLength)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return New(ErrCodeInvalidInput, "text contains invalid control characters")
		}
	}
	return nil
}

// ValidateKeywords checks a keyword batch for paper search. Empty keywords
// are allowed and skipped by the search.
func ValidateKeywords(keywords []string) error {
	if len(keywords) == 0 {
		return New(ErrCodeInvalidInput, "at least one keyword is required")
	}
	if len(keywords) > MaxKeywords {
		return New(ErrCodeInvalidInput, "too many keywords (max %d)", MaxKeywords)
	}
	for _, kw := range keywords {
		if len(kw) > MaxKeywordLength {
			return New(ErrCodeInvalidInput, "keyword too long (max %d characters)", MaxKeywordLength)
		}
		for _, r := range kw {
			if unicode.IsControl(r) {
				return New(ErrCodeInvalidInput, "keyword contains invalid control characters")
			}
		}
	}
	return nil
}

// ValidateURL checks that a base URL uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

// ValidatePath checks an output file path given on the command line.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
