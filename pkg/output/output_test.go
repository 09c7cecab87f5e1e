package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andri/podgrid/pkg/api"
	"github.com/andri/podgrid/pkg/k8s"
)

func sampleData() *Data {
	return &Data{
		Pods: []k8s.PodRecord{
			{
				ID:               "default/web-0",
				Name:             "web-0",
				Namespace:        "default",
				Phase:            "Running",
				Ready:            "1/1",
				RestartCount:     0,
				NodeName:         "node-a",
				CreatedTimestamp: time.Now().Add(-2 * time.Hour).Format(time.RFC3339),
			},
			{
				ID:               "default/worker-0",
				Name:             "worker-0",
				Namespace:        "default",
				Phase:            "Failed",
				Ready:            "0/1",
				RestartCount:     4,
				NodeName:         "node-b",
				CreatedTimestamp: time.Now().Add(-30 * time.Minute).Format(time.RFC3339),
			},
		},
		Pagination: api.PaginationInfo{
			Page:       1,
			PageSize:   50,
			TotalItems: 2,
			TotalPages: 1,
		},
		FetchedAt: time.Now(),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, sampleData()); err != nil {
		t.Fatalf("RenderTable: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"NAME", "NAMESPACE", "STATUS", "RESTARTS", "web-0", "worker-0", "Running", "Failed", "page 1/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("color codes emitted for a non-terminal writer")
	}
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	data := &Data{FetchedAt: time.Now()}
	if err := RenderTable(&buf, data); err != nil {
		t.Fatalf("RenderTable: %v", err)
	}
	if !strings.Contains(buf.String(), "No pods found") {
		t.Errorf("empty listing output = %q", buf.String())
	}
}

func TestRenderTableTruncationNotice(t *testing.T) {
	data := sampleData()
	data.Pagination.MaxLimitReached = true

	var buf bytes.Buffer
	if err := RenderTable(&buf, data); err != nil {
		t.Fatalf("RenderTable: %v", err)
	}
	if !strings.Contains(buf.String(), "truncated") {
		t.Error("truncated listing missing the fetch limit notice")
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleData()); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var decoded Data
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Pods) != 2 {
		t.Errorf("decoded %d pods, want 2", len(decoded.Pods))
	}
	if decoded.Pods[0].ID != "default/web-0" {
		t.Errorf("Pods[0].ID = %q", decoded.Pods[0].ID)
	}
	if decoded.Pagination.TotalItems != 2 {
		t.Errorf("Pagination.TotalItems = %d", decoded.Pagination.TotalItems)
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderYAML(&buf, sampleData()); err != nil {
		t.Fatalf("RenderYAML: %v", err)
	}

	var decoded Data
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Pods) != 2 || decoded.Pods[1].RestartCount != 4 {
		t.Errorf("YAML round trip lost data: %+v", decoded.Pods)
	}
	if !strings.Contains(buf.String(), "restart_count:") {
		t.Error("YAML output not using snake_case field names")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleData(), Format("csv")); err == nil {
		t.Error("expected error for unknown format")
	}
}
