package timecache

import (
	"fmt"
	"testing"
)

func TestObserveProducesWellFormedTimestamp(t *testing.T) {
	c := New()
	c.Observe()
	s := c.Format()
	if len(s) != 19 {
		t.Fatalf("expected 19-byte timestamp, got %q (%d bytes)", s, len(s))
	}
	if s[4] != '-' || s[7] != '-' || s[10] != ' ' || s[13] != ':' || s[16] != ':' {
		t.Fatalf("unexpected timestamp layout: %q", s)
	}
}

func TestDateMatchesFormattedPrefix(t *testing.T) {
	c := New()
	c.Observe()
	y, m, d := c.Date()
	s := c.Format()
	if y == 0 || m == 0 || d == 0 {
		t.Fatalf("expected populated date, got %d-%d-%d", y, m, d)
	}
	if len(s) >= 4 && s[:4] == "0000" {
		t.Fatalf("formatted timestamp did not reflect a real year: %q", s)
	}
	if want := fmt.Sprintf("%04d-%02d-%02d", y, int(m), d); len(s) < 10 || s[:10] != want {
		t.Fatalf("expected formatted prefix %q, got %q", want, s)
	}
}

func TestWriteTwoDigitsPadsSingleDigitValues(t *testing.T) {
	var buf [2]byte
	writeTwoDigits(buf[:], 5)
	if string(buf[:]) != "05" {
		t.Fatalf("expected zero-padded '05', got %q", buf)
	}
}
