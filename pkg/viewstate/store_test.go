package viewstate

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table-state.json")
	store, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, path
}

func TestStore_SaveBlockedBeforeRestore(t *testing.T) {
	store, path := newTestStore(t)

	store.Save(DefaultViewState())

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("layout file must not exist before MarkRestored")
	}
}

func TestStore_SaveAfterRestore(t *testing.T) {
	store, path := newTestStore(t)

	store.MarkRestored()
	vs := DefaultViewState()
	vs.SidebarCollapsed = true
	store.Save(vs)

	loaded := store.Load()
	if loaded == nil {
		t.Fatal("expected saved layout to load")
	}
	if !loaded.SidebarCollapsed {
		t.Error("SidebarCollapsed should persist")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("layout file missing: %v", err)
	}
}

func TestStore_RestoreDoesNotOverwriteSavedLayout(t *testing.T) {
	store, _ := newTestStore(t)

	// A previous session saved a customized layout.
	saved := DefaultViewState()
	saved.PageSize = 200
	if err := WriteFile(store.Path(), saved); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// A new session starts with defaults; nothing may be written until the
	// restore handshake completes.
	store.Save(DefaultViewState())

	loaded := store.Load()
	if loaded == nil {
		t.Fatal("expected layout to load")
	}
	if loaded.PageSize != 200 {
		t.Errorf("PageSize = %d, want 200 (saved layout clobbered)", loaded.PageSize)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	if loaded := store.Load(); loaded != nil {
		t.Errorf("expected nil for missing file, got %+v", loaded)
	}
}

func TestStore_LoadCorruptFile(t *testing.T) {
	store, path := newTestStore(t)

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if loaded := store.Load(); loaded != nil {
		t.Errorf("expected nil for corrupt file, got %+v", loaded)
	}
}

func TestStore_LoadNormalizesUnknownColumns(t *testing.T) {
	store, path := newTestStore(t)

	data := `{
		"version": "v1",
		"columns": [
			{"id": "ghost", "visible": true},
			{"id": "restarts", "visible": true, "width": 12}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write layout file: %v", err)
	}

	loaded := store.Load()
	if loaded == nil {
		t.Fatal("expected layout to load")
	}

	for _, col := range loaded.Columns {
		if col.ID == "ghost" {
			t.Error("unknown column survived normalization")
		}
	}
	if len(loaded.Columns) != len(defaultColumns()) {
		t.Errorf("columns = %d, want full set %d", len(loaded.Columns), len(defaultColumns()))
	}
	if loaded.Columns[0].ID != ColumnRestarts {
		t.Errorf("Columns[0] = %q, want restarts (saved order wins)", loaded.Columns[0].ID)
	}
	if loaded.Columns[0].Width != 12 {
		t.Errorf("Columns[0].Width = %d, want 12", loaded.Columns[0].Width)
	}
}

func TestBackupFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table-state.json")

	if err := WriteFile(path, DefaultViewState()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	backupPath, err := BackupFile(path, BackupOptions{Enabled: true})
	if err != nil {
		t.Fatalf("BackupFile: %v", err)
	}
	if backupPath == "" {
		t.Fatal("expected a backup path")
	}
	if _, err := os.Stat(backupPath); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
}

func TestBackupFile_DisabledOrMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table-state.json")

	// Missing source file is not an error.
	if backupPath, err := BackupFile(path, BackupOptions{Enabled: true}); err != nil || backupPath != "" {
		t.Errorf("missing file: backupPath=%q err=%v", backupPath, err)
	}

	if err := WriteFile(path, DefaultViewState()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Disabled backups skip the copy silently.
	if backupPath, err := BackupFile(path, BackupOptions{Enabled: false}); err != nil || backupPath != "" {
		t.Errorf("disabled: backupPath=%q err=%v", backupPath, err)
	}
}

func TestNormalize_SingleSortMarker(t *testing.T) {
	vs := DefaultViewState()
	vs.Columns[0].Sort = SortNone
	vs.Columns[2].Sort = SortAsc

	col, ok := Normalize(vs).SortedColumn()
	if !ok {
		t.Fatal("expected a sorted column")
	}
	if col.ID != ColumnStatus {
		t.Errorf("sorted column = %q, want status", col.ID)
	}
}

func TestNormalize_ClearsExtraSortMarkers(t *testing.T) {
	vs := DefaultViewState()
	vs.Columns[0].Sort = SortAsc  // name
	vs.Columns[1].Sort = SortDesc // namespace

	normalized := Normalize(vs)

	markers := 0
	for _, col := range normalized.Columns {
		if col.Sort != SortNone {
			markers++
		}
	}
	if markers != 1 {
		t.Fatalf("sort markers = %d, want exactly 1", markers)
	}

	col, _ := normalized.SortedColumn()
	if col.ID != ColumnName || col.Sort != SortAsc {
		t.Errorf("sorted column = %s %q, want name asc (first marker wins)", col.ID, col.Sort)
	}
}

func TestNormalize_AppendedDefaultsRespectExistingMarker(t *testing.T) {
	// A saved layout sorting on namespace but missing the name column must
	// not pick up a second marker from the appended default name column.
	vs := ViewState{
		Version: VersionV1,
		Columns: []ColumnState{
			{ID: ColumnNamespace, Visible: true, Sort: SortDesc},
		},
	}

	normalized := Normalize(vs)

	markers := 0
	for _, col := range normalized.Columns {
		if col.Sort != SortNone {
			markers++
		}
	}
	if markers != 1 {
		t.Fatalf("sort markers = %d, want exactly 1", markers)
	}

	col, _ := normalized.SortedColumn()
	if col.ID != ColumnNamespace || col.Sort != SortDesc {
		t.Errorf("sorted column = %s %q, want namespace desc", col.ID, col.Sort)
	}
}
