package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vaultdrive/middleware"
	"vaultdrive/services"
	"vaultdrive/storage"
	"vaultdrive/utils"
)

// handleError maps service errors onto HTTP statuses. Ownership mismatches
// come back from storage as ErrNotFound already, so nothing here can leak
// another owner's entities as a 403.
func handleError(c *gin.Context, err error, defaultMessage string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		utils.NotFoundResponse(c, "Not found")
	case errors.Is(err, services.ErrCycle):
		utils.ErrorResponse(c, http.StatusConflict, "Move would create a cycle", err.Error())
	case errors.Is(err, services.ErrEmptyName):
		utils.BadRequestResponse(c, "Name cannot be empty", err.Error())
	default:
		utils.InternalServerErrorResponse(c, defaultMessage, err.Error())
	}
}

func ownerFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return primitive.NilObjectID, false
	}
	return ownerID, true
}

func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID format", err.Error())
		return primitive.NilObjectID, false
	}
	return id, true
}
