package main

import (
	"testing"
	"time"

	"github.com/cwbudde/cuckoofit/internal/store"
)

func retentionFixture(now time.Time) []store.RunInfo {
	return []store.RunInfo{
		{ID: "run1", Timestamp: now.AddDate(0, 0, -10)},
		{ID: "run2", Timestamp: now.AddDate(0, 0, -5)},
		{ID: "run3", Timestamp: now.AddDate(0, 0, -1)},
		{ID: "run4", Timestamp: now.AddDate(0, 0, -30)},
	}
}

func ids(infos []store.RunInfo) map[string]bool {
	m := make(map[string]bool, len(infos))
	for _, info := range infos {
		m[info.ID] = true
	}
	return m
}

func TestSelectRunsForDeletion(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		keepLast      int
		olderThanDays int
		want          []string
	}{
		{"by age", 0, 7, []string{"run1", "run4"}},
		{"by count", 2, 0, []string{"run1", "run4"}},
		{"combined", 3, 7, []string{"run1", "run4"}},
		{"keep one", 1, 0, []string{"run1", "run2", "run4"}},
		{"nothing matches", 10, 60, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectRunsForDeletion(retentionFixture(now), tt.keepLast, tt.olderThanDays, now)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d runs to delete, got %d", len(tt.want), len(got))
			}
			selected := ids(got)
			for _, id := range tt.want {
				if !selected[id] {
					t.Errorf("Expected %s to be selected for deletion", id)
				}
			}
		})
	}
}

func TestSelectRunsForDeletionNoDuplicates(t *testing.T) {
	now := time.Now()
	// run4 is both expired and beyond keep-last
	got := selectRunsForDeletion(retentionFixture(now), 1, 20, now)

	seen := map[string]int{}
	for _, info := range got {
		seen[info.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("Run %s selected %d times", id, n)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(abc) = %s", got)
	}
	if got := shortID("0123456789abcdef"); got != "0123456789ab..." {
		t.Errorf("shortID truncated to %s", got)
	}
}
