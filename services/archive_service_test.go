package services

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/models"
	"vaultdrive/storage"
)

func newTestArchive() (*ArchiveService, *HierarchyService, *storage.MemoryBlobStore) {
	hierarchy, _, blobs := newTestHierarchy()
	return NewArchiveService(hierarchy, blobs), hierarchy, blobs
}

func readArchive(t *testing.T, archive *Archive) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive.Content), int64(len(archive.Content)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = string(data)
	}
	return entries
}

func TestBuildArchiveFolderTree(t *testing.T) {
	ctx := context.Background()
	svc, hierarchy, blobs := newTestArchive()
	owner := primitive.NewObjectID()

	root, _ := hierarchy.EnsureRootFolder(ctx, owner)
	d, _ := hierarchy.CreateFolder(ctx, owner, &root.ID, "D")
	e, _ := hierarchy.CreateFolder(ctx, owner, &d.ID, "E")
	if _, err := hierarchy.CreateFolder(ctx, owner, &d.ID, "empty"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	blobs.Put("blob-x", []byte("x content"))
	blobs.Put("blob-y", []byte("y content"))
	if _, err := hierarchy.CreateFile(ctx, owner, d.ID, "x", "txt", "text/plain", 9, "blob-x"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := hierarchy.CreateFile(ctx, owner, e.ID, "y", "md", "text/markdown", 9, "blob-y"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	archive, err := svc.BuildArchive(ctx, owner, []models.Selection{
		{Kind: models.SelectionFolder, Name: "D", ID: d.ID},
	})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	entries := readArchive(t, archive)
	wantContent := map[string]string{
		"D/x.txt":  "x content",
		"D/E/y.md": "y content",
		"D/":       "",
		"D/E/":     "",
		"D/empty/": "",
	}
	for name, content := range wantContent {
		got, ok := entries[name]
		if !ok {
			t.Errorf("entry %s missing from archive", name)
			continue
		}
		if got != content {
			t.Errorf("entry %s = %q, want %q", name, got, content)
		}
	}
	if len(entries) != len(wantContent) {
		t.Errorf("archive holds %d entries, want %d: %v", len(entries), len(wantContent), entries)
	}

	if archive.Filename != "D.zip" {
		t.Errorf("filename = %q, want D.zip", archive.Filename)
	}
}

func TestBuildArchiveSingleFileSelection(t *testing.T) {
	ctx := context.Background()
	svc, hierarchy, blobs := newTestArchive()
	owner := primitive.NewObjectID()

	root, _ := hierarchy.EnsureRootFolder(ctx, owner)
	blobs.Put("blob-y", []byte("hello"))
	file, _ := hierarchy.CreateFile(ctx, owner, root.ID, "y", "md", "text/markdown", 5, "blob-y")

	archive, err := svc.BuildArchive(ctx, owner, []models.Selection{
		{Kind: models.SelectionFile, Name: "y", ID: file.ID},
	})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	entries := readArchive(t, archive)
	if got, ok := entries["y.md"]; !ok || got != "hello" {
		t.Errorf("entries = %v, want top-level y.md with content hello", entries)
	}
	if archive.Filename != "y.zip" {
		t.Errorf("filename = %q, want y.zip", archive.Filename)
	}
}

func TestBuildArchiveSkipsMissingBlobs(t *testing.T) {
	ctx := context.Background()
	svc, hierarchy, blobs := newTestArchive()
	owner := primitive.NewObjectID()

	root, _ := hierarchy.EnsureRootFolder(ctx, owner)
	d, _ := hierarchy.CreateFolder(ctx, owner, &root.ID, "D")
	blobs.Put("blob-ok", []byte("kept"))
	if _, err := hierarchy.CreateFile(ctx, owner, d.ID, "kept", "txt", "text/plain", 4, "blob-ok"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := hierarchy.CreateFile(ctx, owner, d.ID, "lost", "txt", "text/plain", 4, "blob-gone"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	archive, err := svc.BuildArchive(ctx, owner, []models.Selection{
		{Kind: models.SelectionFolder, Name: "D", ID: d.ID},
	})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	entries := readArchive(t, archive)
	if _, ok := entries["D/kept.txt"]; !ok {
		t.Error("entry D/kept.txt missing")
	}
	if _, ok := entries["D/lost.txt"]; ok {
		t.Error("entry for missing blob should be omitted")
	}
}

func TestBuildArchiveSkipsMissingFileRecord(t *testing.T) {
	ctx := context.Background()
	svc, hierarchy, blobs := newTestArchive()
	owner := primitive.NewObjectID()

	root, _ := hierarchy.EnsureRootFolder(ctx, owner)
	blobs.Put("blob-1", []byte("present"))
	file, _ := hierarchy.CreateFile(ctx, owner, root.ID, "present", "txt", "text/plain", 7, "blob-1")

	archive, err := svc.BuildArchive(ctx, owner, []models.Selection{
		{Kind: models.SelectionFile, Name: "present", ID: file.ID},
		{Kind: models.SelectionFile, Name: "ghost", ID: primitive.NewObjectID()},
	})
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}

	entries := readArchive(t, archive)
	if len(entries) != 1 {
		t.Errorf("entries = %v, want only present.txt", entries)
	}
	if _, ok := entries["present.txt"]; !ok {
		t.Error("entry present.txt missing")
	}
}

func TestBuildArchiveRejectsUnknownKind(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestArchive()
	owner := primitive.NewObjectID()

	_, err := svc.BuildArchive(ctx, owner, []models.Selection{
		{Kind: "link", Name: "x", ID: primitive.NewObjectID()},
	})
	if err == nil {
		t.Fatal("BuildArchive accepted an unknown selection kind")
	}
}

func TestArchiveFilenameMultipleSelections(t *testing.T) {
	name := archiveFilename([]models.Selection{
		{Kind: models.SelectionFile, Name: "a"},
		{Kind: models.SelectionFile, Name: "b"},
	})
	if !strings.HasPrefix(name, "files_") || !strings.HasSuffix(name, ".zip") {
		t.Errorf("filename = %q, want files_<timestamp>.zip", name)
	}
}

func TestStoreTemporary(t *testing.T) {
	ctx := context.Background()
	svc, _, blobs := newTestArchive()

	archive := &Archive{Content: []byte("zip bytes"), Filename: "x.zip"}
	ref, url, err := svc.StoreTemporary(ctx, archive)
	if err != nil {
		t.Fatalf("StoreTemporary: %v", err)
	}
	if ref == "" || url == "" {
		t.Fatalf("ref %q / url %q, want both non-empty", ref, url)
	}
	if !blobs.Exists(ref) {
		t.Error("stored archive not present in blob store")
	}
}
