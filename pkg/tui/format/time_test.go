package format

import (
	"testing"
	"time"
)

func TestCreatedIn_RendersLocalTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	got := CreatedIn("2025-06-01T12:00:00Z", loc)
	if got != "Jun 01 2025 14:00" {
		t.Errorf("CreatedIn = %q, want local-time rendering", got)
	}
}

func TestCreatedIn_PassesThroughBadInput(t *testing.T) {
	if got := CreatedIn("not-a-timestamp", time.UTC); got != "not-a-timestamp" {
		t.Errorf("CreatedIn = %q, want raw input", got)
	}
	if got := CreatedIn("", time.UTC); got != "" {
		t.Errorf("CreatedIn = %q, want empty", got)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   string
		want string
	}{
		{"seconds", "2025-06-02T11:59:15Z", "45s"},
		{"minutes with seconds", "2025-06-02T11:54:30Z", "5m30s"},
		{"minutes", "2025-06-02T11:48:00Z", "12m"},
		{"minutes past the hour", "2025-06-02T10:30:00Z", "90m"},
		{"hours", "2025-06-02T09:00:00Z", "3h"},
		{"days", "2025-05-26T12:00:00Z", "7d"},
		{"future clamps to zero", "2025-06-03T12:00:00Z", "0s"},
		{"bad input", "garbage", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(tt.ts, now); got != tt.want {
				t.Errorf("Age(%q) = %q, want %q", tt.ts, got, tt.want)
			}
		})
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	if got := TruncateWithEllipsis("abcdef", 4); got != "abc…" {
		t.Errorf("TruncateWithEllipsis = %q, want abc…", got)
	}
	if got := TruncateWithEllipsis("ab", 4); got != "ab" {
		t.Errorf("short input should pass through, got %q", got)
	}
	if got := TruncateWithEllipsis("abcdef", 0); got != "" {
		t.Errorf("width 0 should yield empty, got %q", got)
	}
}

func TestPadLeft(t *testing.T) {
	if got := PadLeft("7", 3); got != "  7" {
		t.Errorf("PadLeft = %q, want right-aligned", got)
	}
	if got := PadLeft("abcd", 2); got != "ab" {
		t.Errorf("PadLeft = %q, want truncation", got)
	}
}
