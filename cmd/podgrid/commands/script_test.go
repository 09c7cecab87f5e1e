package commands_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andri/podgrid/cmd/podgrid/commands"
)

func TestScriptCmdRequiresArgs(t *testing.T) {
	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"script", "prod", "web-0"})

	err := cmd.Execute()
	if err == nil {
		t.Error("expected error for missing script argument")
	}
}

func TestScriptCmdList(t *testing.T) {
	server := newActionBackend(t)

	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"script", "--list", "--backend-url", server.URL})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "show-env") || !strings.Contains(output, "show-mounts") {
		t.Errorf("expected catalog script names, got %q", output)
	}
}

func TestScriptCmdListRejectsArgs(t *testing.T) {
	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"script", "--list", "prod"})

	err := cmd.Execute()
	if err == nil {
		t.Error("expected error when --list is combined with arguments")
	}
}

func TestScriptCmdSuccess(t *testing.T) {
	server := newActionBackend(t)

	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"script", "prod", "web-0", "show-env", "--yes", "--backend-url", server.URL})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, `Ran "show-env" in web-0.prod.pod.cluster.local`) {
		t.Errorf("expected success line, got %q", output)
	}
	if !strings.Contains(output, "PATH=/usr/bin") {
		t.Errorf("expected script output, got %q", output)
	}
}

func TestScriptCmdRefusedByCatalog(t *testing.T) {
	server := newActionBackend(t)

	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"script", "prod", "web-0", "unknown-script", "--yes", "--backend-url", server.URL})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown script, got nil")
	}

	output := stdout.String()
	if !strings.Contains(output, "script not in catalog") {
		t.Errorf("expected catalog refusal in output, got %q", output)
	}
}

func TestScriptCmdDeclinedPrompt(t *testing.T) {
	server := newActionBackend(t)

	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"script", "prod", "web-0", "show-env", "--backend-url", server.URL})
	cmd.SetIn(strings.NewReader("n\n"))

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, `Run "show-env" in web-0.prod.pod.cluster.local?`) {
		t.Errorf("expected confirmation prompt, got %q", output)
	}
	if !strings.Contains(output, "cancelled") {
		t.Errorf("expected cancellation notice, got %q", output)
	}
}
