package controllers

import (
	"github.com/gin-gonic/gin"

	"vaultdrive/utils"
)

type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// Me returns the principal resolved by the auth middleware. Token issuance
// happens at the identity provider, not here.
func (ac *AuthController) Me(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, "Authenticated", gin.H{
		"id":    ownerID,
		"email": c.GetString("email"),
		"name":  c.GetString("name"),
	})
}
