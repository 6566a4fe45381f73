package money

import (
	"strings"
	"testing"
	"unicode"
)

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func TestFormat_Plain(t *testing.T) {
	f := NewFormatter("", "F")
	if got := f.Format(13000); got != "13000 F" {
		t.Fatalf("got %q", got)
	}
	var zero Formatter
	if got := zero.Format(42); got != "42" {
		t.Fatalf("zero formatter: got %q", got)
	}
}

func TestFormat_FrenchGrouping(t *testing.T) {
	f := NewFormatter("fr-SN", "F")
	got := f.Format(1234567)

	if !strings.HasSuffix(got, " F") {
		t.Fatalf("missing suffix: %q", got)
	}
	if digitsOnly(got) != "1234567" {
		t.Fatalf("digits altered: %q", got)
	}
	if strings.Contains(strings.TrimSuffix(got, " F"), "1234567") {
		t.Fatalf("expected digit grouping, got %q", got)
	}
}

func TestFormat_BadLocaleFallsBack(t *testing.T) {
	if got := NewFormatter("not a locale!", "").Format(5000); got != "5000" {
		t.Fatalf("got %q", got)
	}
}
