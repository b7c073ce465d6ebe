package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

const qrCodeSize = 256

type QRCodeController struct {
	sharingService service.SharingService
}

func NewQRCodeController(sharingService service.SharingService) *QRCodeController {
	return &QRCodeController{
		sharingService: sharingService,
	}
}

// GenerateQRCode handles GET /api/sharing/:token/qrcode - renders the share
// URL of a live link as a PNG.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, models.Fail("Share token is required"))
		return
	}

	if _, err := qc.sharingService.Lookup(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	// Medium error recovery
	qrCode, err := qrcode.New(qc.sharingService.ShareURL(token), qrcode.Medium)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate QR code"))
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.Fail("Failed to generate QR code image"))
		return
	}

	c.Header("Content-Disposition", "inline; filename=vivaha-share.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
