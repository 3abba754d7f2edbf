package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/services"
	"vaultdrive/storage"
	"vaultdrive/utils"
)

type FileController struct {
	hierarchy *services.HierarchyService
	blobs     storage.BlobStore
}

func NewFileController(hierarchy *services.HierarchyService, blobs storage.BlobStore) *FileController {
	return &FileController{hierarchy: hierarchy, blobs: blobs}
}

// CreateFile registers metadata for content that was already uploaded to the
// blob store; the upload URL flow lives outside this service.
func (fc *FileController) CreateFile(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req struct {
		FolderID  string `json:"folder_id" binding:"required"`
		Name      string `json:"name" binding:"required,min=1,max=255"`
		Extension string `json:"extension"`
		MimeType  string `json:"mime_type"`
		Size      int64  `json:"size"`
		BlobRef   string `json:"blob_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}
	if err := utils.ValidateEntityName(req.Name); err != nil {
		utils.BadRequestResponse(c, "Invalid name", err.Error())
		return
	}

	folderID, err := primitive.ObjectIDFromHex(req.FolderID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID format", err.Error())
		return
	}

	file, err := fc.hierarchy.CreateFile(c.Request.Context(), ownerID, folderID,
		req.Name, req.Extension, req.MimeType, req.Size, req.BlobRef)
	if err != nil {
		handleError(c, err, "Failed to create file")
		return
	}
	utils.CreatedResponse(c, "File created successfully", file)
}

func (fc *FileController) GetFile(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	file, err := fc.hierarchy.GetFile(c.Request.Context(), ownerID, fileID)
	if err != nil {
		handleError(c, err, "Failed to retrieve file")
		return
	}
	utils.SuccessResponse(c, "File retrieved successfully", file)
}

// GetDownloadURL returns a signed URL for the file's blob.
func (fc *FileController) GetDownloadURL(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	file, err := fc.hierarchy.GetFile(ctx, ownerID, fileID)
	if err != nil {
		handleError(c, err, "Failed to retrieve file")
		return
	}

	url, err := fc.blobs.URL(ctx, file.BlobRef)
	if err != nil {
		handleError(c, err, "Failed to sign download URL")
		return
	}
	utils.SuccessResponse(c, "Download URL generated", gin.H{"url": url})
}

func (fc *FileController) RenameFile(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	fileID, ok := parseObjectIDParam(c, "id")
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

	if err := fc.hierarchy.RenameFile(c.Request.Context(), ownerID, fileID, req.Name); err != nil {
		handleError(c, err, "Failed to rename file")
		return
	}
	utils.SuccessResponse(c, "File renamed successfully", nil)
}

func (fc *FileController) MoveFile(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		TargetID string `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.TargetID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid target folder ID format", err.Error())
		return
	}

	if err := fc.hierarchy.MoveFile(c.Request.Context(), ownerID, fileID, targetID); err != nil {
		handleError(c, err, "Failed to move file")
		return
	}
	utils.SuccessResponse(c, "File moved successfully", nil)
}

func (fc *FileController) DeleteFile(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}
	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := fc.hierarchy.DeleteFile(c.Request.Context(), ownerID, fileID); err != nil {
		handleError(c, err, "Failed to delete file")
		return
	}
	utils.SuccessResponse(c, "File deleted successfully", nil)
}
