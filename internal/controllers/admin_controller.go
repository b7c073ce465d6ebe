package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// ListUsers handles GET /api/admin/users
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(users))
}
