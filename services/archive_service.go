package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/models"
	"vaultdrive/storage"
	"vaultdrive/utils"
)

// Archive is the assembled export: the full zip bytes plus the filename the
// download should carry. Content is buffered in memory before the caller
// sees any of it; very large exports need a streaming writer behind the same
// contract.
type Archive struct {
	Content  []byte
	Filename string
}

// ArchiveService walks a selection of files and folders and packs them into
// a single zip whose nesting reproduces the folder tree exactly.
type ArchiveService struct {
	hierarchy *HierarchyService
	blobs     storage.BlobStore
}

func NewArchiveService(hierarchy *HierarchyService, blobs storage.BlobStore) *ArchiveService {
	return &ArchiveService{hierarchy: hierarchy, blobs: blobs}
}

// BuildArchive assembles the selections into a zip. File selections land at
// the top level under the selection's display name; folder selections become
// a sub-directory expanded recursively. A file whose record or blob cannot
// be fetched is omitted rather than failing the whole export.
func (s *ArchiveService) BuildArchive(ctx context.Context, ownerID primitive.ObjectID, selections []models.Selection) (*Archive, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, selection := range selections {
		if !selection.Valid() {
			return nil, fmt.Errorf("unknown selection kind %q", selection.Kind)
		}
		switch selection.Kind {
		case models.SelectionFile:
			if err := s.addFileEntry(ctx, zw, ownerID, selection); err != nil {
				return nil, err
			}
		case models.SelectionFolder:
			if err := s.addFolderTree(ctx, zw, ownerID, selection.ID, selection.Name); err != nil {
				return nil, err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return &Archive{
		Content:  buf.Bytes(),
		Filename: archiveFilename(selections),
	}, nil
}

// addFileEntry writes one top-level file selection. The entry is named after
// the selection with the record's extension appended. Missing records and
// missing blobs are skipped silently; a partial archive beats no archive.
func (s *ArchiveService) addFileEntry(ctx context.Context, zw *zip.Writer, ownerID primitive.ObjectID, selection models.Selection) error {
	file, err := s.hierarchy.GetFile(ctx, ownerID, selection.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to fetch file %s: %w", selection.ID.Hex(), err)
	}

	data, err := s.blobs.Get(ctx, file.BlobRef)
	if err != nil {
		utils.LogWarning(fmt.Sprintf("skipping %s: blob %s not retrievable: %v", file.Name, file.BlobRef, err))
		return nil
	}

	name := selection.Name
	if file.Extension != "" {
		name = selection.Name + "." + file.Extension
	}
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}

// addFolderTree expands a folder selection under dir, walking the subtree
// iteratively with an explicit stack. Entry order is not contractual; the
// nesting paths are. Missing files are the only tolerated gap: a selected
// folder that cannot be listed fails the whole export instead of turning
// into an empty directory.
func (s *ArchiveService) addFolderTree(ctx context.Context, zw *zip.Writer, ownerID, folderID primitive.ObjectID, dir string) error {
	type frame struct {
		folderID primitive.ObjectID
		dir      string
	}
	stack := []frame{{folderID: folderID, dir: dir}}
	expanded := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		expanded++
		if expanded > maxTreeNodes {
			return fmt.Errorf("selection expands to more than %d folders", maxTreeNodes)
		}

		// Explicit directory entry keeps empty folders in the archive.
		if _, err := zw.Create(top.dir + "/"); err != nil {
			return fmt.Errorf("failed to create archive directory %s: %w", top.dir, err)
		}

		files, err := s.hierarchy.ListChildFiles(ctx, ownerID, top.folderID)
		if err != nil {
			return fmt.Errorf("failed to list files of %s: %w", top.folderID.Hex(), err)
		}
		for _, file := range files {
			data, err := s.blobs.Get(ctx, file.BlobRef)
			if err != nil {
				utils.LogWarning(fmt.Sprintf("skipping %s: blob %s not retrievable: %v", file.Name, file.BlobRef, err))
				continue
			}
			entryPath := path.Join(top.dir, file.ArchiveName())
			entry, err := zw.Create(entryPath)
			if err != nil {
				return fmt.Errorf("failed to create archive entry %s: %w", entryPath, err)
			}
			if _, err := entry.Write(data); err != nil {
				return fmt.Errorf("failed to write archive entry %s: %w", entryPath, err)
			}
		}

		children, err := s.hierarchy.ListChildFolders(ctx, ownerID, top.folderID)
		if err != nil {
			return fmt.Errorf("failed to list folders of %s: %w", top.folderID.Hex(), err)
		}
		for _, child := range children {
			stack = append(stack, frame{
				folderID: child.ID,
				dir:      path.Join(top.dir, child.Name),
			})
		}
	}
	return nil
}

// StoreTemporary uploads the archive to the blob store so it can be served
// by signed URL. The caller is responsible for scheduling cleanup of the
// returned ref.
func (s *ArchiveService) StoreTemporary(ctx context.Context, archive *Archive) (ref string, url string, err error) {
	ref, err = s.blobs.Store(ctx, archive.Content)
	if err != nil {
		return "", "", fmt.Errorf("failed to store temporary archive: %w", err)
	}
	url, err = s.blobs.URL(ctx, ref)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign temporary archive URL: %w", err)
	}
	return ref, url, nil
}

func archiveFilename(selections []models.Selection) string {
	if len(selections) == 1 {
		return selections[0].Name + ".zip"
	}
	return "files_" + time.Now().UTC().Format("2006-01-02T15-04-05") + ".zip"
}
