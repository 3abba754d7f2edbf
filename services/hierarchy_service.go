package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/models"
	"vaultdrive/storage"
	"vaultdrive/utils"
)

// ErrEmptyName rejects names that are empty after trimming whitespace.
var ErrEmptyName = errors.New("name cannot be empty")

// maxTreeNodes caps how many folders a recursive subtree listing will expand
// before giving up on a pathological tree.
const maxTreeNodes = 10000

// HierarchyService owns the folder/file metadata tree: creation with
// collision-safe sibling naming, renames, cycle-guarded moves, deletes, and
// recursive subtree listings. All operations are scoped to the calling owner;
// entities belonging to somebody else read as absent.
type HierarchyService struct {
	store storage.HierarchyStore
	blobs storage.BlobStore
}

func NewHierarchyService(store storage.HierarchyStore, blobs storage.BlobStore) *HierarchyService {
	return &HierarchyService{store: store, blobs: blobs}
}

// EnsureRootFolder returns the owner's root folder, creating it on first
// access. The lookup is keyed by the reserved root name at the top level,
// which makes the operation idempotent.
func (s *HierarchyService) EnsureRootFolder(ctx context.Context, ownerID primitive.ObjectID) (*models.Folder, error) {
	root, err := s.store.FindFolderByName(ctx, ownerID, nil, models.RootFolderName)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up root folder: %w", err)
	}

	now := time.Now()
	root = &models.Folder{
		Name:      models.RootFolderName,
		OwnerID:   ownerID,
		ParentID:  nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertFolder(ctx, root); err != nil {
		return nil, fmt.Errorf("failed to create root folder: %w", err)
	}
	return root, nil
}

// CreateFolder creates a folder under parentID, resolving the name against
// existing sibling folders. A nil parentID is the get-or-create of the
// owner's root folder.
func (s *HierarchyService) CreateFolder(ctx context.Context, ownerID primitive.ObjectID, parentID *primitive.ObjectID, name string) (*models.Folder, error) {
	if parentID == nil {
		return s.EnsureRootFolder(ctx, ownerID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	parent, err := s.store.GetFolder(ctx, ownerID, *parentID)
	if err != nil {
		return nil, fmt.Errorf("parent folder: %w", err)
	}

	siblings, err := s.store.ListChildFolders(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sibling folders: %w", err)
	}
	names := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		names = append(names, sibling.Name)
	}

	now := time.Now()
	folder := &models.Folder{
		Name:      ResolveUniqueName(name, names),
		OwnerID:   ownerID,
		ParentID:  &parent.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// CreateFile registers a file's metadata under folderID. The name is
// resolved against sibling files only; files and folders occupy independent
// namespaces, so a file and a folder may share a literal name.
func (s *HierarchyService) CreateFile(ctx context.Context, ownerID, folderID primitive.ObjectID, name, extension, mimeType string, size int64, blobRef string) (*models.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	parent, err := s.store.GetFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, fmt.Errorf("parent folder: %w", err)
	}

	siblings, err := s.store.ListChildFiles(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sibling files: %w", err)
	}
	names := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		names = append(names, sibling.Name)
	}

	now := time.Now()
	file := &models.File{
		Name:      ResolveUniqueName(name, names),
		Extension: extension,
		MimeType:  mimeType,
		Size:      size,
		BlobRef:   blobRef,
		FolderID:  parent.ID,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertFile(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

func (s *HierarchyService) GetFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) (*models.Folder, error) {
	return s.store.GetFolder(ctx, ownerID, folderID)
}

func (s *HierarchyService) GetFile(ctx context.Context, ownerID, fileID primitive.ObjectID) (*models.File, error) {
	return s.store.GetFile(ctx, ownerID, fileID)
}

// ListChildFiles returns folderID's immediate files, newest first.
func (s *HierarchyService) ListChildFiles(ctx context.Context, ownerID, folderID primitive.ObjectID) ([]models.File, error) {
	if _, err := s.store.GetFolder(ctx, ownerID, folderID); err != nil {
		return nil, err
	}
	return s.store.ListChildFiles(ctx, folderID)
}

// ListChildFolders returns folderID's immediate sub-folders, newest first.
func (s *HierarchyService) ListChildFolders(ctx context.Context, ownerID, folderID primitive.ObjectID) ([]models.Folder, error) {
	if _, err := s.store.GetFolder(ctx, ownerID, folderID); err != nil {
		return nil, err
	}
	return s.store.ListChildFolders(ctx, folderID)
}

// RenameFile trims and applies newName. Sibling collisions are not
// re-checked on rename; a rename can silently shadow a sibling's name.
func (s *HierarchyService) RenameFile(ctx context.Context, ownerID, fileID primitive.ObjectID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if _, err := s.store.GetFile(ctx, ownerID, fileID); err != nil {
		return err
	}
	return s.store.UpdateFileName(ctx, ownerID, fileID, newName)
}

// RenameFolder trims and applies newName, with the same no-collision-check
// caveat as RenameFile.
func (s *HierarchyService) RenameFolder(ctx context.Context, ownerID, folderID primitive.ObjectID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if _, err := s.store.GetFolder(ctx, ownerID, folderID); err != nil {
		return err
	}
	return s.store.UpdateFolderName(ctx, ownerID, folderID, newName)
}

// MoveFile reparents a file under targetFolderID.
func (s *HierarchyService) MoveFile(ctx context.Context, ownerID, fileID, targetFolderID primitive.ObjectID) error {
	if _, err := s.store.GetFile(ctx, ownerID, fileID); err != nil {
		return err
	}
	if _, err := s.store.GetFolder(ctx, ownerID, targetFolderID); err != nil {
		return fmt.Errorf("target folder: %w", err)
	}
	return s.store.UpdateFileFolder(ctx, ownerID, fileID, targetFolderID)
}

// MoveFolder reparents a folder under targetID, or to the top level when
// targetID is nil. The move is rejected with ErrCycle when the target is the
// folder itself or any of its descendants.
func (s *HierarchyService) MoveFolder(ctx context.Context, ownerID, folderID primitive.ObjectID, targetID *primitive.ObjectID) error {
	if _, err := s.store.GetFolder(ctx, ownerID, folderID); err != nil {
		return err
	}
	if targetID != nil {
		if _, err := s.store.GetFolder(ctx, ownerID, *targetID); err != nil {
			return fmt.Errorf("target folder: %w", err)
		}
	}
	if err := s.canMoveFolder(ctx, ownerID, folderID, targetID); err != nil {
		return err
	}
	return s.store.UpdateFolderParent(ctx, ownerID, folderID, targetID)
}

// DeleteFile removes the metadata row, then asks the blob store to drop the
// payload. The blob delete is best-effort: a failure is logged and never
// surfaced, the metadata delete has already succeeded.
func (s *HierarchyService) DeleteFile(ctx context.Context, ownerID, fileID primitive.ObjectID) error {
	file, err := s.store.GetFile(ctx, ownerID, fileID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteFile(ctx, ownerID, fileID); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, file.BlobRef); err != nil {
		utils.LogError(fmt.Sprintf("failed to delete blob %s for file %s", file.BlobRef, fileID.Hex()), err)
	}
	return nil
}

// DeleteFolder removes the folder row only. Children are not cascaded and
// keep pointing at the deleted id; see the design notes before changing this.
func (s *HierarchyService) DeleteFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) error {
	if _, err := s.store.GetFolder(ctx, ownerID, folderID); err != nil {
		return err
	}
	return s.store.DeleteFolder(ctx, ownerID, folderID)
}

// GetFilesAndFoldersRecursive expands folderID into its full subtree: the
// folder itself, its child files, and each child folder expanded the same
// way. The walk is iterative over an explicit stack and stops with an error
// if the subtree exceeds maxTreeNodes.
func (s *HierarchyService) GetFilesAndFoldersRecursive(ctx context.Context, ownerID, folderID primitive.ObjectID) (*models.TreeNode, error) {
	folder, err := s.store.GetFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	root := &models.TreeNode{Folder: *folder}
	stack := []*models.TreeNode{root}
	visited := map[primitive.ObjectID]bool{folder.ID: true}
	nodes := 1

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		files, err := s.store.ListChildFiles(ctx, node.Folder.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of %s: %w", node.Folder.ID.Hex(), err)
		}
		node.Files = files

		children, err := s.store.ListChildFolders(ctx, node.Folder.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list folders of %s: %w", node.Folder.ID.Hex(), err)
		}
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			nodes++
			if nodes > maxTreeNodes {
				return nil, fmt.Errorf("subtree exceeds %d folders", maxTreeNodes)
			}
			childNode := &models.TreeNode{Folder: child}
			node.Folders = append(node.Folders, childNode)
			stack = append(stack, childNode)
		}
	}
	return root, nil
}
