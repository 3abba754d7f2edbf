// Package storage owns the folder/file metadata graph and the blob payload
// backends behind it. All lookups are owner-scoped: asking for somebody
// else's entity is indistinguishable from asking for one that does not
// exist, so the callers can never probe for existence.
package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/models"
)

// ErrNotFound covers unknown ids, ids owned by another user, and absent
// path segments alike.
var ErrNotFound = errors.New("not found")

// HierarchyStore is the metadata graph. Every mutation is atomic on its own;
// there is no cross-call transaction, so read-then-write sequences (unique
// naming, cycle checks) race with concurrent writers by design.
type HierarchyStore interface {
	InsertFolder(ctx context.Context, folder *models.Folder) error
	GetFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) (*models.Folder, error)
	// FindFolderByName looks up a child folder by exact name under parentID.
	// A nil parentID addresses the owner's top level, which is how the
	// reserved root folder is found.
	FindFolderByName(ctx context.Context, ownerID primitive.ObjectID, parentID *primitive.ObjectID, name string) (*models.Folder, error)
	ListChildFolders(ctx context.Context, folderID primitive.ObjectID) ([]models.Folder, error)
	ListChildFiles(ctx context.Context, folderID primitive.ObjectID) ([]models.File, error)
	UpdateFolderName(ctx context.Context, ownerID, folderID primitive.ObjectID, name string) error
	UpdateFolderParent(ctx context.Context, ownerID, folderID primitive.ObjectID, parentID *primitive.ObjectID) error
	// DeleteFolder removes the folder row only. Descendants are not
	// cascaded; orphaned children keep pointing at the deleted id.
	DeleteFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) error

	InsertFile(ctx context.Context, file *models.File) error
	GetFile(ctx context.Context, ownerID, fileID primitive.ObjectID) (*models.File, error)
	UpdateFileName(ctx context.Context, ownerID, fileID primitive.ObjectID, name string) error
	UpdateFileFolder(ctx context.Context, ownerID, fileID, folderID primitive.ObjectID) error
	DeleteFile(ctx context.Context, ownerID, fileID primitive.ObjectID) error
}

// BlobStore is the opaque content backend. References are ownership-agnostic;
// the hierarchy layer is the only place that ties a ref to an owner.
type BlobStore interface {
	Store(ctx context.Context, data []byte) (string, error)
	// Get returns ErrNotFound when the ref does not resolve; callers that
	// tolerate missing blobs check for it with errors.Is.
	Get(ctx context.Context, ref string) ([]byte, error)
	// Delete of an already-deleted ref is a no-op success.
	Delete(ctx context.Context, ref string) error
	URL(ctx context.Context, ref string) (string, error)
}
