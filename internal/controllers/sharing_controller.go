package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

type SharingController struct {
	sharingService service.SharingService
}

func NewSharingController(sharingService service.SharingService) *SharingController {
	return &SharingController{sharingService: sharingService}
}

// Generate handles POST /api/sharing/generate
func (sc *SharingController) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateShareLinkRequest
	// An empty body means a view link.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	response, err := sc.sharingService.Generate(c.Request.Context(), userID, entities.AccessLevel(req.AccessLevel))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK(response))
}

// List handles GET /api/sharing/links
func (sc *SharingController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	links, err := sc.sharingService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(links))
}

// Revoke handles DELETE /api/sharing/:token
func (sc *SharingController) Revoke(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := sc.sharingService.Revoke(c.Request.Context(), userID, c.Param("token")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Share link revoked successfully"))
}

// Shared handles GET /api/sharing/access/:token and its /api/shared/:token
// alias. Public, no auth.
func (sc *SharingController) Shared(c *gin.Context) {
	shared, err := sc.sharingService.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(shared))
}
