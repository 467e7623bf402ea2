package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputSize is the largest puzzle text accepted by ValidateInput (4 MiB).
const MaxInputSize = 4 << 20

// ValidateCommentMarker validates a comment marker for the instruction section.
//
// The validation rules keep markers from colliding with real input:
//   - No empty markers
//   - No whitespace or control characters
//   - Must not start with a digit, '[' or the word "move"
//   - Maximum length of 8 characters
func ValidateCommentMarker(marker string) error {
	if marker == "" {
		return New(ErrCodeInvalidInput, "comment marker cannot be empty")
	}

	if utf8.RuneCountInString(marker) > 8 {
		return New(ErrCodeInvalidInput, "comment marker too long (max 8 characters)")
	}

	for _, r := range marker {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "comment marker contains whitespace or control characters")
		}
	}

	first, _ := utf8.DecodeRuneInString(marker)
	if unicode.IsDigit(first) || first == '[' {
		return New(ErrCodeInvalidInput, "comment marker %q would shadow diagram lines", marker)
	}
	if strings.HasPrefix(marker, "move") {
		return New(ErrCodeInvalidInput, "comment marker %q would shadow move instructions", marker)
	}

	return nil
}

// ValidateInput validates raw puzzle text before it is parsed.
// It rejects empty input, oversized input, invalid UTF-8 and NUL bytes.
func ValidateInput(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return New(ErrCodeInvalidInput, "input is empty")
	}

	if len(data) > MaxInputSize {
		return New(ErrCodeInvalidInput, "input too large (max %d bytes)", MaxInputSize)
	}

	if !utf8.Valid(data) {
		return New(ErrCodeInvalidInput, "input is not valid UTF-8")
	}

	if idx := strings.IndexByte(string(data), 0); idx >= 0 {
		return New(ErrCodeInvalidInput, "input contains a NUL byte at offset %d", idx)
	}

	return nil
}

// identifierTokenRegex matches a single declared stack identifier.
var identifierTokenRegex = regexp.MustCompile(`^[0-9]+$`)

// ValidateStackToken validates a single stack identifier token as written in
// the identifier row or in a move instruction.
func ValidateStackToken(tok string) error {
	if !identifierTokenRegex.MatchString(tok) {
		return New(ErrCodeInvalidInput, "invalid stack identifier: %q", tok)
	}
	if strings.TrimLeft(tok, "0") == "" {
		return New(ErrCodeInvalidInput, "stack identifier must be positive: %q", tok)
	}
	return nil
}
