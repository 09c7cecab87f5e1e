package viewstate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andri/podgrid/internal/logger"
)

type viewStateJSON struct {
	Version          *string       `json:"version"`
	Columns          *[]columnJSON `json:"columns"`
	PageSize         *int          `json:"pageSize"`
	Page             *int          `json:"page"`
	SidebarCollapsed *bool         `json:"sidebarCollapsed"`
	Timestamp        *string       `json:"timestamp"`
}

type columnJSON struct {
	ID      *string `json:"id"`
	Width   *int    `json:"width"`
	Visible *bool   `json:"visible"`
	Sort    *string `json:"sort"`
}

// Parse parses layout data from JSON bytes.
func Parse(data []byte) (*ViewState, error) {
	return parseViewState(data, "")
}

// ParseFile parses a JSON layout file from disk.
func ParseFile(path string) (*ViewState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file %s: %w", path, err)
	}
	return parseViewState(data, path)
}

// WriteFile writes layout data to disk as deterministic JSON.
func WriteFile(path string, vs ViewState) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("layout file path is required")
	}

	normalized := Normalize(vs)
	if normalized.Timestamp.IsZero() {
		normalized.Timestamp = time.Now().UTC()
	}

	payload, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout file: %w", err)
	}
	payload = append(payload, '\n')

	return writeFileAtomic(path, payload)
}

func parseViewState(data []byte, path string) (*ViewState, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("empty layout file")}
	}

	var raw viewStateJSON
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, &ParseError{Path: path, Err: errors.New("unexpected trailing data")}
	}

	version := ""
	if raw.Version != nil {
		version = strings.TrimSpace(*raw.Version)
	}
	if version == "" {
		return nil, &ValidationError{Path: path, Field: "version", Message: "missing"}
	}
	if version != VersionV1 {
		return nil, &ValidationError{Path: path, Field: "version", Message: fmt.Sprintf("unsupported value %q", version)}
	}

	if raw.Columns == nil {
		return nil, &ValidationError{Path: path, Field: "columns", Message: "missing"}
	}

	columns := make([]ColumnState, 0, len(*raw.Columns))
	for i, col := range *raw.Columns {
		fieldPrefix := fmt.Sprintf("columns[%d]", i)

		if col.ID == nil || strings.TrimSpace(*col.ID) == "" {
			return nil, &ValidationError{Path: path, Field: fieldPrefix + ".id", Message: "missing"}
		}
		if col.Visible == nil {
			return nil, &ValidationError{Path: path, Field: fieldPrefix + ".visible", Message: "missing"}
		}

		parsed := ColumnState{
			ID:      *col.ID,
			Visible: *col.Visible,
		}
		if col.Width != nil {
			if *col.Width < 0 {
				return nil, &ValidationError{Path: path, Field: fieldPrefix + ".width", Message: "must be >= 0"}
			}
			parsed.Width = *col.Width
		}
		if col.Sort != nil {
			switch *col.Sort {
			case SortNone, SortAsc, SortDesc:
				parsed.Sort = *col.Sort
			default:
				return nil, &ValidationError{Path: path, Field: fieldPrefix + ".sort", Message: fmt.Sprintf("unsupported value %q", *col.Sort)}
			}
		}
		columns = append(columns, parsed)
	}

	parsed := &ViewState{
		Version: version,
		Columns: columns,
	}
	if raw.PageSize != nil {
		if *raw.PageSize < 1 {
			return nil, &ValidationError{Path: path, Field: "pageSize", Message: "must be >= 1"}
		}
		parsed.PageSize = *raw.PageSize
	} else {
		parsed.PageSize = DefaultViewState().PageSize
	}
	if raw.Page != nil {
		if *raw.Page < 1 {
			return nil, &ValidationError{Path: path, Field: "page", Message: "must be >= 1"}
		}
		parsed.Page = *raw.Page
	} else {
		parsed.Page = 1
	}
	if raw.SidebarCollapsed != nil {
		parsed.SidebarCollapsed = *raw.SidebarCollapsed
	}
	if raw.Timestamp != nil && strings.TrimSpace(*raw.Timestamp) != "" {
		parsedTimestamp, err := time.Parse(time.RFC3339Nano, *raw.Timestamp)
		if err != nil {
			return nil, &ValidationError{Path: path, Field: "timestamp", Message: "invalid RFC3339 timestamp"}
		}
		parsed.Timestamp = parsedTimestamp
	}

	return parsed, nil
}

func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create layout directory %s: %w", dir, err)
		}
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.")
	if err != nil {
		return fmt.Errorf("create temp layout file: %w", err)
	}
	tmpName := tmpFile.Name()

	if _, err := tmpFile.Write(payload); err != nil {
		_ = tmpFile.Close()
		logger.Error("failed to write layout file", "path", path, "temp_path", tmpName, "error", err)
		return fmt.Errorf("write layout file %s: %w", path, err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		logger.Error("failed to sync layout file", "path", path, "temp_path", tmpName, "error", err)
		return fmt.Errorf("sync layout file %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		logger.Error("failed to close layout temp file", "path", path, "temp_path", tmpName, "error", err)
		return fmt.Errorf("close layout temp file %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		logger.Error("failed to set layout file permissions", "path", path, "temp_path", tmpName, "error", err)
		return fmt.Errorf("chmod layout file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		logger.Error("failed to replace layout file", "path", path, "temp_path", tmpName, "error", err)
		return fmt.Errorf("replace layout file %s: %w", path, err)
	}

	return nil
}
