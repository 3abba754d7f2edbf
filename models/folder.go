package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RootFolderName is the reserved name of the parentless folder that anchors
// an owner's tree. EnsureRootFolder creates it lazily, once per owner.
const RootFolderName = "Root"

type Folder struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	ParentID  *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	OwnerID   primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// IsRoot reports whether this folder anchors its owner's tree.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
