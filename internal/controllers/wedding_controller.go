package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

type WeddingController struct {
	weddingService service.WeddingService
}

func NewWeddingController(weddingService service.WeddingService) *WeddingController {
	return &WeddingController{weddingService: weddingService}
}

// Get handles GET /api/wedding. The wedding is created on first access.
func (wc *WeddingController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	wedding, err := wc.weddingService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(wedding))
}

// Update handles PUT /api/wedding
func (wc *WeddingController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.UpdateWeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	wedding, err := wc.weddingService.UpdateDetails(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(wedding))
}

// Delete handles DELETE /api/wedding
func (wc *WeddingController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := wc.weddingService.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Wedding deleted successfully"))
}

// Summary handles GET /api/wedding/summary
func (wc *WeddingController) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := wc.weddingService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(summary))
}
