package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ringlog/ringlog/internal/metrics"
)

func TestDecideFileCreatesPrimaryPath(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "myprog", 1<<20, metrics.NewCollector())
	defer r.Close()

	if err := r.DecideFile(2024, time.January, 9); err != nil {
		t.Fatalf("DecideFile failed: %v", err)
	}
	want := filepath.Join(dir, fmt.Sprintf("myprog.20240109.%d.log", os.Getpid()))
	if r.primaryPath() != want {
		t.Fatalf("expected primary path %q, got %q", want, r.primaryPath())
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected primary file to exist: %v", err)
	}
}

// S6 — day rollover opens a new file stamped with the new date.
func TestDayRolloverOpensNewFile(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "myprog", 1<<20, metrics.NewCollector())
	defer r.Close()

	r.DecideFile(2024, time.January, 9)
	first := r.primaryPath()
	r.Write([]byte("hello"))

	r.DecideFile(2024, time.January, 10)
	second := r.primaryPath()

	if first == second {
		t.Fatal("expected a new primary path after day rollover")
	}
	if _, err := os.Stat(second); err != nil {
		t.Fatalf("expected new day's file to exist: %v", err)
	}
}

// Property 11 — crossing the size threshold triggers rotation and the
// primary file's size resets to 0.
func TestRotationOnSizeThreshold(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, "myprog", 10, metrics.NewCollector()) // tiny threshold
	defer r.Close()

	r.DecideFile(2024, time.January, 9)
	r.Write([]byte("0123456789")) // exactly at threshold; size >= maxSize rotates

	r.DecideFile(2024, time.January, 9) // triggers size check again
	if _, err := os.Stat(r.rotatedPath(1)); err != nil {
		t.Fatalf("expected rotated file .1 to exist: %v", err)
	}
	size, err := r.currentSize()
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if size != 0 {
		t.Fatalf("expected fresh primary file to be empty, got size %d", size)
	}
}

func TestUnwritableDirectoryFallsBackToDevNull(t *testing.T) {
	// A path that cannot be created as a directory (its parent is a file).
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	os.WriteFile(blocker, []byte("x"), 0644)
	dir := filepath.Join(blocker, "logs")

	r := New(dir, "myprog", 1<<20, metrics.NewCollector())
	defer r.Close()

	if err := r.DecideFile(2024, time.January, 9); err != nil {
		t.Fatalf("expected /dev/null fallback to succeed, got %v", err)
	}
	if err := r.Write([]byte("swallowed")); err != nil {
		t.Fatalf("expected write to /dev/null sink to succeed, got %v", err)
	}
}

type shortWriter struct {
	calls   int
	perCall int
	failAt  int
	failErr error
}

func (s *shortWriter) Write(p []byte) (int, error) {
	s.calls++
	if s.failAt > 0 && s.calls >= s.failAt {
		return 0, s.failErr
	}
	n := s.perCall
	if n > len(p) {
		n = len(p)
	}
	return n, nil
}

// S9 — a short write that recovers on retry emits no diagnostic and
// delivers every byte.
func TestRetryingWriteRecoversFromShortWrite(t *testing.T) {
	w := &shortWriter{perCall: 4}
	payload := []byte("0123456789")

	written, shortfall, err := retryingWrite(w, payload, maxShortWriteRetries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shortfall != 0 {
		t.Fatalf("expected no shortfall, got %d", shortfall)
	}
	if written != len(payload) {
		t.Fatalf("expected all %d bytes written, got %d", len(payload), written)
	}
}

func TestRetryingWriteGivesUpAfterMaxRetries(t *testing.T) {
	w := &shortWriter{perCall: 1}
	payload := []byte("0123456789")

	written, shortfall, err := retryingWrite(w, payload, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 3 { // first attempt + 2 retries, 1 byte each
		t.Fatalf("expected 3 bytes written before giving up, got %d", written)
	}
	if shortfall != len(payload)-3 {
		t.Fatalf("expected shortfall of %d, got %d", len(payload)-3, shortfall)
	}
}

func TestRetryingWritePropagatesUnrecoverableError(t *testing.T) {
	wantErr := errors.New("disk full")
	w := &shortWriter{perCall: 2, failAt: 2, failErr: wantErr}

	_, _, err := retryingWrite(w, []byte("0123456789"), maxShortWriteRetries)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
