package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/andri/podgrid/pkg/k8s"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func drain(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}

func TestDeleteConfirmShowsFQDN(t *testing.T) {
	target := k8s.PodRecord{Name: "api-0", Namespace: "prod"}
	c := NewDeleteConfirm(target)

	plain := ansi.Strip(c.View())
	if !strings.Contains(plain, "api-0.prod.pod.cluster.local") {
		t.Errorf("prompt missing pod FQDN: %q", plain)
	}
}

func TestDeleteConfirmShowsPhaseBadge(t *testing.T) {
	target := k8s.PodRecord{Name: "api-0", Namespace: "prod", Phase: "Failed"}
	c := NewDeleteConfirm(target)

	plain := ansi.Strip(c.View())
	if !strings.Contains(plain, "● Failed") {
		t.Errorf("prompt missing phase badge: %q", plain)
	}
}

func TestDeleteConfirmYes(t *testing.T) {
	target := k8s.PodRecord{ID: "prod/api-0", Name: "api-0", Namespace: "prod"}
	c := NewDeleteConfirm(target)

	_, cmd := c.Update(keyPress('y'))
	raw := drain(t, cmd)
	msg, ok := raw.(ConfirmResultMsg)
	if !ok {
		t.Fatalf("got %T, want ConfirmResultMsg", raw)
	}

	if msg.Result != ConfirmYes {
		t.Errorf("Result = %v, want ConfirmYes", msg.Result)
	}
	if msg.Kind != ActionDelete {
		t.Errorf("Kind = %v, want ActionDelete", msg.Kind)
	}
	if msg.Target.ID != "prod/api-0" {
		t.Errorf("Target.ID = %q", msg.Target.ID)
	}
	if !c.IsAnswered() {
		t.Error("prompt should be answered after y")
	}
}

func TestDeleteConfirmCancel(t *testing.T) {
	c := NewDeleteConfirm(k8s.PodRecord{Name: "api-0", Namespace: "prod"})

	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg := drain(t, cmd).(ConfirmResultMsg)
	if msg.Result != ConfirmCancelled {
		t.Errorf("Result = %v, want ConfirmCancelled", msg.Result)
	}
}

func TestDeleteConfirmIgnoresInputAfterAnswer(t *testing.T) {
	c := NewDeleteConfirm(k8s.PodRecord{Name: "api-0", Namespace: "prod"})

	c.Update(keyPress('n'))
	_, cmd := c.Update(keyPress('y'))
	if cmd != nil {
		t.Error("answered prompt should swallow further input")
	}
}

func TestScriptConfirmStartsOnPlaceholder(t *testing.T) {
	c := NewScriptConfirm(k8s.PodRecord{Name: "api-0", Namespace: "prod"}, []string{"dump-env", "show-mounts"})

	if c.CanConfirm() {
		t.Error("confirmation should be disabled while the placeholder is selected")
	}
	if got := c.SelectedScript(); got != "" {
		t.Errorf("SelectedScript = %q, want empty", got)
	}
}

func TestScriptConfirmBlocksYesOnPlaceholder(t *testing.T) {
	c := NewScriptConfirm(k8s.PodRecord{Name: "api-0", Namespace: "prod"}, []string{"dump-env"})

	_, cmd := c.Update(keyPress('y'))
	if cmd != nil {
		t.Fatal("y on the placeholder must not confirm")
	}
	_, cmd = c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("enter on the placeholder must not confirm")
	}
	if c.IsAnswered() {
		t.Error("prompt should still be pending")
	}
}

func TestScriptConfirmSelectAndConfirm(t *testing.T) {
	target := k8s.PodRecord{ID: "prod/api-0", Name: "api-0", Namespace: "prod"}
	c := NewScriptConfirm(target, []string{"dump-env", "show-mounts"})

	c.Update(keyPress('j'))
	c.Update(keyPress('j'))
	if got := c.SelectedScript(); got != "show-mounts" {
		t.Fatalf("SelectedScript = %q, want show-mounts", got)
	}

	_, cmd := c.Update(keyPress('y'))
	msg := drain(t, cmd).(ConfirmResultMsg)
	if msg.Kind != ActionScript {
		t.Errorf("Kind = %v, want ActionScript", msg.Kind)
	}
	if msg.Script != "show-mounts" {
		t.Errorf("Script = %q, want show-mounts", msg.Script)
	}
	if msg.Target.ID != "prod/api-0" {
		t.Errorf("Target.ID = %q", msg.Target.ID)
	}
}

func TestScriptConfirmSelectorClampsAtEnds(t *testing.T) {
	c := NewScriptConfirm(k8s.PodRecord{Name: "api-0", Namespace: "prod"}, []string{"dump-env"})

	c.Update(keyPress('k'))
	if c.CanConfirm() {
		t.Error("moving up from the placeholder should stay on it")
	}

	c.Update(keyPress('j'))
	c.Update(keyPress('j'))
	if got := c.SelectedScript(); got != "dump-env" {
		t.Errorf("SelectedScript = %q, want dump-env after clamping", got)
	}
}

func TestScriptConfirmCancelFromPlaceholder(t *testing.T) {
	c := NewScriptConfirm(k8s.PodRecord{Name: "api-0", Namespace: "prod"}, []string{"dump-env"})

	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg := drain(t, cmd).(ConfirmResultMsg)
	if msg.Result != ConfirmCancelled {
		t.Errorf("Result = %v, want ConfirmCancelled", msg.Result)
	}
	if msg.Script != "" {
		t.Errorf("cancelled prompt carried script %q", msg.Script)
	}
}
