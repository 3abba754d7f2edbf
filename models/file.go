package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type File struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Extension string             `bson:"extension" json:"extension"`
	MimeType  string             `bson:"mime_type" json:"mime_type"`
	Size      int64              `bson:"size" json:"size"`
	BlobRef   string             `bson:"blob_ref" json:"blob_ref"`
	FolderID  primitive.ObjectID `bson:"folder_id" json:"folder_id"`
	OwnerID   primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// ArchiveName is the entry name a file gets inside an exported archive:
// "name.extension", or the bare name when the file has no extension.
func (f *File) ArchiveName() string {
	if f.Extension == "" {
		return f.Name
	}
	return f.Name + "." + f.Extension
}
