package client

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncedSearcherFiresOnceForRapidTyping(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	searcher := NewDebouncedSearcher(30*time.Millisecond, func(term string) {
		mu.Lock()
		calls = append(calls, term)
		mu.Unlock()
	})

	// Keystrokes arriving faster than the delay supersede each other.
	searcher.Update("a")
	time.Sleep(5 * time.Millisecond)
	searcher.Update("ab")
	time.Sleep(5 * time.Millisecond)
	searcher.Update("abc")

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one search, got %d: %v", len(calls), calls)
	}
	if calls[0] != "abc" {
		t.Fatalf("expected search for latest term, got %q", calls[0])
	}
}

func TestDebouncedSearcherFiresPerPause(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	searcher := NewDebouncedSearcher(20*time.Millisecond, func(term string) {
		mu.Lock()
		calls = append(calls, term)
		mu.Unlock()
	})

	searcher.Update("first")
	time.Sleep(60 * time.Millisecond)
	searcher.Update("second")
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("expected one search per pause, got %v", calls)
	}
}

func TestDebouncedSearcherStopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	fired := false

	searcher := NewDebouncedSearcher(20*time.Millisecond, func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	searcher.Update("abandoned")
	searcher.Stop()

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Fatalf("stopped searcher must not fire")
	}
}

func TestFilterDonorsMatchesNameOrEmailCaseInsensitive(t *testing.T) {
	donors := []DonorResult{
		{DonorID: 1, DonorName: "Karim Ahmed", Email: "karim@example.com"},
		{DonorID: 2, DonorName: "Fatema Begum", Email: "fatema@example.com"},
		{DonorID: 3, DonorName: "Other", Email: "KARIM.backup@example.com"},
	}

	got := FilterDonors(donors, "  KaRim ")
	if len(got) != 2 || got[0].DonorID != 1 || got[1].DonorID != 3 {
		t.Fatalf("unexpected filter result: %v", got)
	}

	if got := FilterDonors(donors, ""); len(got) != 3 {
		t.Fatalf("blank term must pass everything through, got %v", got)
	}
}

func TestFilterStudentsHandlesMissingContact(t *testing.T) {
	contact := "01712345678"
	students := []StudentResult{
		{StudentID: 1, StudentName: "Rahim", Contact: &contact},
		{StudentID: 2, StudentName: "Sonia", Contact: nil},
	}

	got := FilterStudents(students, "0171")
	if len(got) != 1 || got[0].StudentID != 1 {
		t.Fatalf("unexpected filter result: %v", got)
	}

	got = FilterStudents(students, "sonia")
	if len(got) != 1 || got[0].StudentID != 2 {
		t.Fatalf("unexpected filter result: %v", got)
	}
}
