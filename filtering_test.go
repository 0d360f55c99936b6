package ringlog

import "testing"

func TestPassesFiltersWithEmptyChain(t *testing.T) {
	l := &Logger{cfg: Config{}}
	if !l.passesFilters(INFO, "anything") {
		t.Fatal("an empty filter chain should pass everything")
	}
}

func TestPassesFiltersShortCircuitsOnFirstRejection(t *testing.T) {
	calls := 0
	reject := func(level int, msg string) bool { calls++; return false }
	neverCalled := func(level int, msg string) bool {
		t.Fatal("second filter should not run once an earlier one rejected")
		return true
	}
	l := &Logger{cfg: Config{Filters: []FilterFunc{reject, neverCalled}}}
	if l.passesFilters(INFO, "x") {
		t.Fatal("expected rejection")
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 call, got %d", calls)
	}
}

func TestPassesFiltersToleratesNilEntries(t *testing.T) {
	l := &Logger{cfg: Config{Filters: []FilterFunc{nil}}}
	if !l.passesFilters(INFO, "x") {
		t.Fatal("a nil filter entry should be skipped, not treated as a rejection")
	}
}
