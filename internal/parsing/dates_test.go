package parsing

import (
	"testing"
	"time"
)

func TestParseUploadDate(t *testing.T) {
	// Known date resolves to local midnight
	want := time.Date(2017, 9, 20, 0, 0, 0, 0, time.Local).Unix()
	got, err := ParseUploadDate("20170920")
	if err != nil {
		t.Fatalf("expected no error for valid date, got: %v", err)
	}
	if got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}

	// Empty input means unknown, not an error
	got, err = ParseUploadDate("")
	if err != nil {
		t.Fatalf("expected no error for empty input, got: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}

	// Malformed non-empty input fails loudly
	if _, err := ParseUploadDate("2017-09-20"); err == nil {
		t.Fatalf("expected error for hyphenated date, got nil")
	}
	if _, err := ParseUploadDate("notadate"); err == nil {
		t.Fatalf("expected error for garbage input, got nil")
	}
}

func TestParseReleaseDate(t *testing.T) {
	if got := ParseReleaseDate(""); got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}
	if got := ParseReleaseDate("not a date at all"); got != 0 {
		t.Fatalf("expected 0 for unparseable input, got %d", got)
	}
	if got := ParseReleaseDate("2020-01-02"); got == 0 {
		t.Fatalf("expected nonzero timestamp for parseable date")
	}
}
