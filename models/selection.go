package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SelectionKind discriminates the two entity kinds an export request may
// reference. Anything else is rejected before the archive walk starts.
type SelectionKind string

const (
	SelectionFile   SelectionKind = "file"
	SelectionFolder SelectionKind = "folder"
)

// Selection is one top-level item of an export request. Name is the caller's
// display name for the entry (files are archived under it, folders become a
// sub-directory with that name).
type Selection struct {
	Kind SelectionKind      `json:"kind"`
	Name string             `json:"name"`
	ID   primitive.ObjectID `json:"id"`
}

func (s Selection) Valid() bool {
	return s.Kind == SelectionFile || s.Kind == SelectionFolder
}

// TreeNode is one folder of a recursive subtree listing: the folder itself
// plus its immediate child files and, recursively, its child folders.
type TreeNode struct {
	Folder  Folder      `json:"folder"`
	Files   []File      `json:"files"`
	Folders []*TreeNode `json:"folders"`
}
