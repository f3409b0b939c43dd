package engine

import (
	"strings"
	"testing"
)

func TestWindowAround(t *testing.T) {
	long := strings.Repeat("a", WindowCharLimit+50)

	testCases := []struct {
		name         string
		text         string
		cursor       int
		wantBefore   int
		wantAfter    int
		reachesStart bool
		reachesEnd   bool
	}{
		{"small doc fits whole", "hello world", 5, 5, 6, true, true},
		{"cursor at start", "hello", 0, 0, 5, true, true},
		{"cursor at end", "hello", 5, 5, 0, true, true},
		{"empty doc", "", 0, 0, 0, true, true},
		{"before clamped at limit", long, len(long), WindowCharLimit, 0, false, true},
		{"after clamped at limit", long, 0, 0, WindowCharLimit, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			win, err := windowAround(tc.text, tc.cursor)
			if err != nil {
				t.Fatalf("windowAround: %v", err)
			}
			if len(win.Before) != tc.wantBefore || len(win.After) != tc.wantAfter {
				t.Errorf("window sizes = (%d, %d), want (%d, %d)",
					len(win.Before), len(win.After), tc.wantBefore, tc.wantAfter)
			}
			if win.ReachesStart != tc.reachesStart || win.ReachesEnd != tc.reachesEnd {
				t.Errorf("window flags = (%v, %v), want (%v, %v)",
					win.ReachesStart, win.ReachesEnd, tc.reachesStart, tc.reachesEnd)
			}
		})
	}
}

func TestWindowAroundBadCursor(t *testing.T) {
	if _, err := windowAround("short", 99); err == nil {
		t.Error("expected error for cursor past document end")
	}
	if _, err := windowAround("short", -1); err == nil {
		t.Error("expected error for negative cursor")
	}
}
