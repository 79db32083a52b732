package validate

import (
	"strings"
	"testing"
)

func TestUserID(t *testing.T) {
	for _, ok := range []string{"u1", "user_1", "a", "abcdefghij0123456789"} {
		if err := UserID(ok); err != nil {
			t.Errorf("UserID(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"", "User1", "user-1", "user 1", "abcdefghij01234567890"} {
		if err := UserID(bad); err == nil {
			t.Errorf("UserID(%q) = nil, want error", bad)
		}
	}
}

func TestChakraIndex(t *testing.T) {
	for idx := 0; idx <= 6; idx++ {
		if err := ChakraIndex(idx); err != nil {
			t.Errorf("ChakraIndex(%d) = %v, want nil", idx, err)
		}
	}
	for _, bad := range []int{-1, 7, 42} {
		if err := ChakraIndex(bad); err == nil {
			t.Errorf("ChakraIndex(%d) = nil, want error", bad)
		}
	}
}

func TestReflectionText(t *testing.T) {
	if err := ReflectionText("I feel calm and connected today", 20); err != nil {
		t.Errorf("valid text rejected: %v", err)
	}
	if err := ReflectionText("short", 20); err == nil {
		t.Error("short text accepted")
	}
	if err := ReflectionText("                              ", 20); err == nil {
		t.Error("whitespace-only text accepted")
	}
}

func TestReflectionText_CountsRunesNotBytes(t *testing.T) {
	// 10 runes but 30 bytes; must still be too short for a 20-char minimum.
	if err := ReflectionText(strings.Repeat("禅", 10), 20); err == nil {
		t.Error("10-rune multibyte text accepted against a 20-char minimum")
	}
	if err := ReflectionText(strings.Repeat("禅", 20), 20); err != nil {
		t.Errorf("20-rune multibyte text rejected: %v", err)
	}
}
