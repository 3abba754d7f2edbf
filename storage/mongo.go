package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vaultdrive/models"
)

// MongoStore keeps folders and files in two collections. Listings sort by
// created_at descending, newest first.
type MongoStore struct {
	folders *mongo.Collection
	files   *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		folders: db.Collection("folders"),
		files:   db.Collection("files"),
	}
}

func (s *MongoStore) InsertFolder(ctx context.Context, folder *models.Folder) error {
	if folder.ID.IsZero() {
		folder.ID = primitive.NewObjectID()
	}
	if _, err := s.folders.InsertOne(ctx, folder); err != nil {
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

func (s *MongoStore) GetFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) (*models.Folder, error) {
	var folder models.Folder
	err := s.folders.FindOne(ctx, bson.M{
		"_id":      folderID,
		"owner_id": ownerID,
	}).Decode(&folder)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &folder, nil
}

func (s *MongoStore) FindFolderByName(ctx context.Context, ownerID primitive.ObjectID, parentID *primitive.ObjectID, name string) (*models.Folder, error) {
	filter := bson.M{
		"name":     name,
		"owner_id": ownerID,
	}
	if parentID != nil {
		filter["parent_id"] = *parentID
	} else {
		filter["parent_id"] = nil
	}

	var folder models.Folder
	err := s.folders.FindOne(ctx, filter).Decode(&folder)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &folder, nil
}

func (s *MongoStore) ListChildFolders(ctx context.Context, folderID primitive.ObjectID) ([]models.Folder, error) {
	cursor, err := s.folders.Find(ctx, bson.M{"parent_id": folderID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("failed to decode folders: %w", err)
	}
	return folders, nil
}

func (s *MongoStore) ListChildFiles(ctx context.Context, folderID primitive.ObjectID) ([]models.File, error) {
	cursor, err := s.files.Find(ctx, bson.M{"folder_id": folderID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer cursor.Close(ctx)

	var files []models.File
	if err = cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	return files, nil
}

func (s *MongoStore) UpdateFolderName(ctx context.Context, ownerID, folderID primitive.ObjectID, name string) error {
	return s.updateOne(ctx, s.folders, ownerID, folderID, bson.M{"name": name})
}

func (s *MongoStore) UpdateFolderParent(ctx context.Context, ownerID, folderID primitive.ObjectID, parentID *primitive.ObjectID) error {
	var parent interface{}
	if parentID != nil {
		parent = *parentID
	}
	return s.updateOne(ctx, s.folders, ownerID, folderID, bson.M{"parent_id": parent})
}

func (s *MongoStore) DeleteFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) error {
	return s.deleteOne(ctx, s.folders, ownerID, folderID)
}

func (s *MongoStore) InsertFile(ctx context.Context, file *models.File) error {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	if _, err := s.files.InsertOne(ctx, file); err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}
	return nil
}

func (s *MongoStore) GetFile(ctx context.Context, ownerID, fileID primitive.ObjectID) (*models.File, error) {
	var file models.File
	err := s.files.FindOne(ctx, bson.M{
		"_id":      fileID,
		"owner_id": ownerID,
	}).Decode(&file)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &file, nil
}

func (s *MongoStore) UpdateFileName(ctx context.Context, ownerID, fileID primitive.ObjectID, name string) error {
	return s.updateOne(ctx, s.files, ownerID, fileID, bson.M{"name": name})
}

func (s *MongoStore) UpdateFileFolder(ctx context.Context, ownerID, fileID, folderID primitive.ObjectID) error {
	return s.updateOne(ctx, s.files, ownerID, fileID, bson.M{"folder_id": folderID})
}

func (s *MongoStore) DeleteFile(ctx context.Context, ownerID, fileID primitive.ObjectID) error {
	return s.deleteOne(ctx, s.files, ownerID, fileID)
}

func (s *MongoStore) updateOne(ctx context.Context, coll *mongo.Collection, ownerID, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now()
	result, err := coll.UpdateOne(ctx, bson.M{
		"_id":      id,
		"owner_id": ownerID,
	}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) deleteOne(ctx context.Context, coll *mongo.Collection, ownerID, id primitive.ObjectID) error {
	result, err := coll.DeleteOne(ctx, bson.M{
		"_id":      id,
		"owner_id": ownerID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
