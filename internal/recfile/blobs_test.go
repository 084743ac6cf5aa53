package recfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clippyd/clippy/internal/record"
)

func TestImageDirSaveAndDelete(t *testing.T) {
	images := NewImageDir(filepath.Join(t.TempDir(), "images"))

	path, err := images.Save([]byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Dir(path) != images.Root() {
		t.Errorf("blob saved to %s, want it under %s", path, images.Root())
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("blob path %s lacks a .png extension", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat blob failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("blob permissions = %o, want 600", perm)
	}

	dirInfo, err := os.Stat(images.Root())
	if err != nil {
		t.Fatalf("Stat image dir failed: %v", err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0o700 {
		t.Errorf("image dir permissions = %o, want 700", perm)
	}

	if err := images.Delete(path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("blob still exists after Delete")
	}
}

func TestImageDirSaveGeneratesUniqueNames(t *testing.T) {
	images := NewImageDir(filepath.Join(t.TempDir(), "images"))

	first, err := images.Save([]byte("one"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := images.Save([]byte("one"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first == second {
		t.Error("identical payloads must still get distinct blob files")
	}
}

func TestImageDirRejectsEmptyData(t *testing.T) {
	images := NewImageDir(filepath.Join(t.TempDir(), "images"))
	if _, err := images.Save(nil); err == nil {
		t.Error("expected Save of empty data to fail")
	}
}

func TestImageDirDeleteMissingIsNoError(t *testing.T) {
	images := NewImageDir(filepath.Join(t.TempDir(), "images"))
	if err := images.Delete(filepath.Join(images.Root(), "gone.png")); err != nil {
		t.Errorf("Delete of missing blob failed: %v", err)
	}
	if err := images.Delete(""); err != nil {
		t.Errorf("Delete of empty path failed: %v", err)
	}
}

func TestSweepExpiredRemovesOnlyAgedRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	images := NewImageDir(filepath.Join(dir, "images"))

	now := time.Now()
	aged := now.Add(-40 * 24 * time.Hour).Unix()
	fresh := now.Add(-24 * time.Hour).Unix()

	blob, err := images.Save([]byte("old image"))
	if err != nil {
		t.Fatalf("Save blob failed: %v", err)
	}

	records := []record.Record{
		{Kind: record.Text, Content: "fresh", CreatedAt: fresh},
		{Kind: record.Image, Content: "[image: 9 bytes]", CreatedAt: aged, Path: blob},
		{Kind: record.Text, Content: "undated"},
	}
	if err := Save(path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	removed, err := SweepExpired(path, 30, images, now)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	kept := Load(path)
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
	if kept[0].Content != "fresh" || kept[1].Content != "undated" {
		t.Errorf("kept records = %+v, want fresh and undated", kept)
	}
	if _, err := os.Stat(blob); !os.IsNotExist(err) {
		t.Error("expired image record's blob was not deleted")
	}
}

func TestSweepExpiredFailedSaveKeepsBlobs(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission-based save failure does not apply to root")
	}

	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	if err := os.MkdirAll(storeDir, 0o700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	path := filepath.Join(storeDir, "history.json")
	images := NewImageDir(filepath.Join(dir, "images"))

	now := time.Now()
	blob, err := images.Save([]byte("old image"))
	if err != nil {
		t.Fatalf("Save blob failed: %v", err)
	}
	records := []record.Record{
		{Kind: record.Image, Content: "[image: 9 bytes]", CreatedAt: now.Add(-40 * 24 * time.Hour).Unix(), Path: blob},
	}
	if err := Save(path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := os.Chmod(storeDir, 0o500); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}
	t.Cleanup(func() { os.Chmod(storeDir, 0o700) })

	removed, err := SweepExpired(path, 30, images, now)
	if err == nil {
		t.Fatal("expected sweep to fail when the store directory is read-only")
	}
	if removed != 0 {
		t.Errorf("removed = %d on a failed save, want 0", removed)
	}

	// Every record is still in the file, so every blob must survive.
	if _, err := os.Stat(blob); err != nil {
		t.Errorf("blob deleted despite the failed save: %v", err)
	}
}

func TestSweepExpiredNothingToRemoveSkipsRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	images := NewImageDir(filepath.Join(dir, "images"))

	records := []record.Record{{Kind: record.Text, Content: "fresh", CreatedAt: time.Now().Unix()}}
	if err := Save(path, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	removed, err := SweepExpired(path, 30, images, time.Now())
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("sweep with nothing to remove must not rewrite the file")
	}
}
