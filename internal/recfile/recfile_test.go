package recfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/clippyd/clippy/internal/record"
)

func TestLoadAbsentFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	records := Load(path)
	if len(records) != 0 {
		t.Errorf("Load of absent file returned %d records, want 0", len(records))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	want := []record.Record{
		{Kind: record.Text, Content: "newest", CreatedAt: 300},
		{Kind: record.Image, Content: "[image: 9 bytes]", CreatedAt: 200, Path: "/tmp/x.png"},
		{Kind: record.Text, Content: "oldest", CreatedAt: 100, Label: "keep"},
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := Load(path)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSaveSetsOwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := Save(path, []record.Record{{Kind: record.Text, Content: "a"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file permissions = %o, want 600", perm)
	}
}

func TestSaveKeepsOnePriorGeneration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	first := []record.Record{{Kind: record.Text, Content: "first", CreatedAt: 1}}
	second := []record.Record{{Kind: record.Text, Content: "second", CreatedAt: 2}}
	third := []record.Record{{Kind: record.Text, Content: "third", CreatedAt: 3}}

	if err := Save(path, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path + BackupSuffix); !os.IsNotExist(err) {
		t.Error("backup should not exist after the first save")
	}

	if err := Save(path, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Save(path, third); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Only the immediately-previous generation is kept.
	backup := Load(path + BackupSuffix)
	if len(backup) != 1 || backup[0].Content != "second" {
		t.Errorf("backup holds %+v, want the second generation", backup)
	}
}

func TestLoadRecoversFromBackupOnCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	want := []record.Record{{Kind: record.Text, Content: "recovered", CreatedAt: 42}}
	if err := Save(path+BackupSuffix, want); err != nil {
		t.Fatalf("Save backup failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got := Load(path)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want backup contents %+v", got, want)
	}
}

func TestLoadBothCorruptReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(path+BackupSuffix, []byte("also garbage"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if records := Load(path); len(records) != 0 {
		t.Errorf("Load returned %d records, want 0", len(records))
	}
}

func TestLoadNonArrayShapeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(`{"type":"text"}`), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if records := Load(path); len(records) != 0 {
		t.Errorf("Load of non-array file returned %d records, want 0", len(records))
	}
}

func TestSaveFailureLeavesPriorState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "history.json")

	// Parent directory does not exist, so the temp-file creation fails.
	err := Save(path, []record.Record{{Kind: record.Text, Content: "a"}})
	if err == nil {
		t.Fatal("expected Save into a missing directory to fail")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed Save must not create the primary file")
	}
}

func TestSaveNilRecordsWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("file contents = %q, want an empty JSON array", string(data))
	}
}
