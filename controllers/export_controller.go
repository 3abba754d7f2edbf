package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"vaultdrive/jobs"
	"vaultdrive/models"
	"vaultdrive/services"
	"vaultdrive/utils"
)

type ExportController struct {
	archives *services.ArchiveService
	cleaner  *jobs.ArchiveCleaner
}

func NewExportController(archives *services.ArchiveService, cleaner *jobs.ArchiveCleaner) *ExportController {
	return &ExportController{archives: archives, cleaner: cleaner}
}

type exportRequest struct {
	Selections []models.Selection `json:"selections" binding:"required,min=1"`
}

// validSelections rejects unknown selection kinds with a 400 before any
// archive work starts. Both export handlers share it.
func validSelections(c *gin.Context, selections []models.Selection) bool {
	for _, selection := range selections {
		if !selection.Valid() {
			utils.BadRequestResponse(c, "Invalid selection kind", string(selection.Kind))
			return false
		}
	}
	return true
}

// ExportZip assembles the selection into a zip and returns the bytes
// directly with a download filename. The whole archive is buffered before
// the first response byte goes out.
func (ec *ExportController) ExportZip(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}
	if !validSelections(c, req.Selections) {
		return
	}

	archive, err := ec.archives.BuildArchive(c.Request.Context(), ownerID, req.Selections)
	if err != nil {
		handleError(c, err, "Failed to build archive")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.Filename))
	c.Data(http.StatusOK, "application/zip", archive.Content)
}

// ExportZipLink builds the archive, parks it in the blob store, and returns
// a signed URL. The temporary blob is scheduled for cleanup after the
// configured delay.
func (ec *ExportController) ExportZipLink(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data", err.Error())
		return
	}
	if !validSelections(c, req.Selections) {
		return
	}

	ctx := c.Request.Context()
	archive, err := ec.archives.BuildArchive(ctx, ownerID, req.Selections)
	if err != nil {
		handleError(c, err, "Failed to build archive")
		return
	}

	ref, url, err := ec.archives.StoreTemporary(ctx, archive)
	if err != nil {
		handleError(c, err, "Failed to store archive")
		return
	}
	ec.cleaner.Schedule(ref)

	utils.SuccessResponse(c, "Archive ready", gin.H{
		"url":      url,
		"filename": archive.Filename,
	})
}
