package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pranaflow/prana-server/internal/model"
)

// UserID must be lowercase letters, digits, underscore, 1-20 chars
var userIdRx = regexp.MustCompile(`^[a-z0-9_]{1,20}$`)

// UserID validates the user identifier format.
func UserID(v string) error {
	if v == "" {
		return fmt.Errorf("userId is required")
	}
	if !userIdRx.MatchString(v) {
		return fmt.Errorf("userId must match %s", userIdRx.String())
	}
	return nil
}

// ChakraIndex validates a chakra slot index.
func ChakraIndex(v int) error {
	if v < 0 || v >= model.NumChakras {
		return fmt.Errorf("chakraIndex must be between 0 and %d", model.NumChakras-1)
	}
	return nil
}

// ReflectionText validates point-eligible reflection text against the
// configured minimum length. The minimum is a product choice, so it arrives
// as a parameter rather than a constant here.
func ReflectionText(v string, minChars int) error {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return fmt.Errorf("reflection text is required")
	}
	// counted in runes so multibyte scripts are not short-changed
	if utf8.RuneCountInString(trimmed) < minChars {
		return fmt.Errorf("reflection text must be at least %d characters", minChars)
	}
	return nil
}
