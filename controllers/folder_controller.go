package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/services"
	"vaultdrive/utils"
)

type FolderController struct {
	hierarchy *services.HierarchyService
	paths     *services.PathResolver
}

func NewFolderController(hierarchy *services.HierarchyService, paths *services.PathResolver) *FolderController {
	return &FolderController{hierarchy: hierarchy, paths: paths}
}

// EnsureRoot returns the caller's root folder, creating it on first access.
func (fc *FolderController) EnsureRoot(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	root, err := fc.hierarchy.EnsureRootFolder(c.Request.Context(), ownerID)
	if err != nil {
		handleError(c, err, "Failed to ensure root folder")
		return
	}
	utils.SuccessResponse(c, "Root folder ready", root)
}

func (fc *FolderController) CreateFolder(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name     string  `json:"name" binding:"required,min=1,max=255"`
		ParentID *string `json:"parent_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}
	if err := utils.ValidateEntityName(req.Name); err != nil {
		utils.BadRequestResponse(c, "Invalid name", err.Error())
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentID != nil && *req.ParentID != "" {
		id, err := primitive.ObjectIDFromHex(*req.ParentID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid parent folder ID format", err.Error())
			return
		}
		parentID = &id
	}

	folder, err := fc.hierarchy.CreateFolder(c.Request.Context(), ownerID, parentID, req.Name)
	if err != nil {
		handleError(c, err, "Failed to create folder")
		return
	}
	utils.CreatedResponse(c, "Folder created successfully", folder)
}

func (fc *FolderController) GetFolder(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	folder, err := fc.hierarchy.GetFolder(c.Request.Context(), ownerID, folderID)
	if err != nil {
		handleError(c, err, "Failed to retrieve folder")
		return
	}
	utils.SuccessResponse(c, "Folder retrieved successfully", folder)
}

// ListChildren returns the folder's immediate sub-folders and files in one
// view, both newest first.
func (fc *FolderController) ListChildren(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	folders, err := fc.hierarchy.ListChildFolders(ctx, ownerID, folderID)
	if err != nil {
		handleError(c, err, "Failed to list folders")
		return
	}
	files, err := fc.hierarchy.ListChildFiles(ctx, ownerID, folderID)
	if err != nil {
		handleError(c, err, "Failed to list files")
		return
	}

	utils.SuccessResponse(c, "Folder contents retrieved", gin.H{
		"folders": folders,
		"files":   files,
	})
}

// GetTree returns the folder and its full recursive subtree.
func (fc *FolderController) GetTree(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	tree, err := fc.hierarchy.GetFilesAndFoldersRecursive(c.Request.Context(), ownerID, folderID)
	if err != nil {
		handleError(c, err, "Failed to build folder tree")
		return
	}
	utils.SuccessResponse(c, "Folder tree retrieved", tree)
}

// GetPath returns the folder's slash-delimited path from the root.
func (fc *FolderController) GetPath(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	path, err := fc.paths.FolderPath(c.Request.Context(), ownerID, folderID)
	if err != nil {
		handleError(c, err, "Failed to resolve folder path")
		return
	}
	utils.SuccessResponse(c, "Path resolved", gin.H{"path": path})
}

// ResolvePath maps a path string back to a folder id, anchored at the
// caller's root folder.
func (fc *FolderController) ResolvePath(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if err := utils.ValidatePath(path); err != nil {
		utils.BadRequestResponse(c, "Invalid path", err.Error())
		return
	}

	ctx := c.Request.Context()
	root, err := fc.hierarchy.EnsureRootFolder(ctx, ownerID)
	if err != nil {
		handleError(c, err, "Failed to ensure root folder")
		return
	}

	folderID, err := fc.paths.Resolve(ctx, path, ownerID, root.ID)
	if err != nil {
		handleError(c, err, "Failed to resolve path")
		return
	}
	utils.SuccessResponse(c, "Path resolved", gin.H{"folder_id": folderID})
}

func (fc *FolderController) RenameFolder(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	if err := fc.hierarchy.RenameFolder(c.Request.Context(), ownerID, folderID, req.Name); err != nil {
		handleError(c, err, "Failed to rename folder")
		return
	}
	utils.SuccessResponse(c, "Folder renamed successfully", nil)
}

// MoveFolder reparents a folder; an absent target moves it to the top level.
func (fc *FolderController) MoveFolder(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		TargetID *string `json:"target_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	var targetID *primitive.ObjectID
	if req.TargetID != nil && *req.TargetID != "" {
		id, err := primitive.ObjectIDFromHex(*req.TargetID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid target folder ID format", err.Error())
			return
		}
		targetID = &id
	}

	if err := fc.hierarchy.MoveFolder(c.Request.Context(), ownerID, folderID, targetID); err != nil {
		handleError(c, err, "Failed to move folder")
		return
	}
	utils.SuccessResponse(c, "Folder moved successfully", nil)
}

func (fc *FolderController) DeleteFolder(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := fc.hierarchy.DeleteFolder(c.Request.Context(), ownerID, folderID); err != nil {
		handleError(c, err, "Failed to delete folder")
		return
	}
	utils.SuccessResponse(c, "Folder deleted successfully", nil)
}
