package controllers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Whitespace-only names pass the binding's min=1 but fail name validation;
// the handler must answer 400, not hand the name to the hierarchy.
func TestCreateFolderRejectsWhitespaceName(t *testing.T) {
	owner := primitive.NewObjectID()
	router, hierarchy := newControllerRouter(owner)

	root, err := hierarchy.EnsureRootFolder(context.Background(), owner)
	if err != nil {
		t.Fatalf("EnsureRootFolder: %v", err)
	}

	body := fmt.Sprintf(`{"name":"   ","parent_id":%q}`, root.ID.Hex())
	w := postJSON(t, router, "/folders", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	folders, err := hierarchy.ListChildFolders(context.Background(), owner, root.ID)
	if err != nil {
		t.Fatalf("ListChildFolders: %v", err)
	}
	if len(folders) != 0 {
		t.Errorf("rejected create still added %d folders", len(folders))
	}
}

func TestCreateFileRejectsWhitespaceName(t *testing.T) {
	owner := primitive.NewObjectID()
	router, hierarchy := newControllerRouter(owner)

	root, err := hierarchy.EnsureRootFolder(context.Background(), owner)
	if err != nil {
		t.Fatalf("EnsureRootFolder: %v", err)
	}

	body := fmt.Sprintf(`{"folder_id":%q,"name":"   ","blob_ref":"blob-1"}`, root.ID.Hex())
	w := postJSON(t, router, "/files", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateFolderValidName(t *testing.T) {
	owner := primitive.NewObjectID()
	router, hierarchy := newControllerRouter(owner)

	root, err := hierarchy.EnsureRootFolder(context.Background(), owner)
	if err != nil {
		t.Fatalf("EnsureRootFolder: %v", err)
	}

	body := fmt.Sprintf(`{"name":"Docs","parent_id":%q}`, root.ID.Hex())
	w := postJSON(t, router, "/folders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	folders, err := hierarchy.ListChildFolders(context.Background(), owner, root.ID)
	if err != nil {
		t.Fatalf("ListChildFolders: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Docs" {
		t.Errorf("folders = %v, want single Docs", folders)
	}
}
