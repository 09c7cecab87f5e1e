package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestNoticeView(t *testing.T) {
	tests := []struct {
		name  string
		level NoticeLevel
		icon  string
	}{
		{"info", NoticeInfo, "ℹ"},
		{"success", NoticeSuccess, "✓"},
		{"danger", NoticeDanger, "⚠"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNotice(1, "pod deleted", tt.level, 5*time.Second)
			plain := ansi.Strip(n.View())
			if !strings.Contains(plain, "pod deleted") {
				t.Errorf("notice text missing: %q", plain)
			}
			if !strings.Contains(plain, tt.icon) {
				t.Errorf("notice icon %q missing: %q", tt.icon, plain)
			}
		})
	}
}

func TestNoticeStartEmitsExpiryWithID(t *testing.T) {
	n := NewNotice(42, "done", NoticeSuccess, time.Millisecond)
	cmd := n.Start()
	if cmd == nil {
		t.Fatal("Start returned nil command")
	}

	raw := cmd()
	msg, ok := raw.(NoticeExpiredMsg)
	if !ok {
		t.Fatalf("got %T, want NoticeExpiredMsg", raw)
	}
	if msg.ID != 42 {
		t.Errorf("expiry ID = %d, want 42", msg.ID)
	}
}

func TestErrorBannerEmptyWhenNoError(t *testing.T) {
	if got := (ErrorBanner{}).View(); got != "" {
		t.Errorf("empty banner rendered %q", got)
	}
}

func TestErrorBannerShowsLastKnownDataHint(t *testing.T) {
	b := ErrorBanner{Text: "backend unreachable"}
	plain := ansi.Strip(b.View())

	if !strings.Contains(plain, "backend unreachable") {
		t.Errorf("banner missing error text: %q", plain)
	}
	if !strings.Contains(plain, "showing last known data") {
		t.Errorf("banner missing stale-data hint: %q", plain)
	}
}
