package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/models"
	"vaultdrive/storage"
)

// PathResolver maps between folder ids and slash-delimited path strings.
// FolderPath and Resolve are round-trip inverses for any folder reachable by
// name-based lookup.
type PathResolver struct {
	store storage.HierarchyStore
}

func NewPathResolver(store storage.HierarchyStore) *PathResolver {
	return &PathResolver{store: store}
}

// FolderPath builds the path of folderID from its ancestor chain. The root
// folder's own segment is dropped: the root maps to "/", a folder "Docs"
// directly under it to "/Docs".
func (r *PathResolver) FolderPath(ctx context.Context, ownerID, folderID primitive.ObjectID) (string, error) {
	var segments []string

	current := folderID
	for depth := 0; depth < maxAncestorDepth; depth++ {
		folder, err := r.store.GetFolder(ctx, ownerID, current)
		if err != nil {
			return "", fmt.Errorf("failed to walk ancestor chain: %w", err)
		}
		if folder.ParentID == nil {
			// Root segment is dropped.
			if len(segments) == 0 {
				return "/", nil
			}
			for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
				segments[i], segments[j] = segments[j], segments[i]
			}
			return "/" + strings.Join(segments, "/"), nil
		}
		segments = append(segments, folder.Name)
		current = *folder.ParentID
	}
	return "", fmt.Errorf("ancestor chain deeper than %d", maxAncestorDepth)
}

// Resolve walks path segment by segment from rootID, matching child folders
// by exact name. "", "/" and the reserved root name all resolve to the root.
// The first absent segment fails the whole resolution with ErrNotFound.
func (r *PathResolver) Resolve(ctx context.Context, path string, ownerID, rootID primitive.ObjectID) (primitive.ObjectID, error) {
	if path == "" || path == "/" || path == models.RootFolderName {
		return rootID, nil
	}

	current := rootID
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		folder, err := r.store.FindFolderByName(ctx, ownerID, &current, segment)
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("segment %q: %w", segment, err)
		}
		current = folder.ID
	}
	return current, nil
}
