package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
	"vivaha-be/internal/yelp"
)

// VendorSearchController relays directory results. Like the AI endpoints its
// body is not wrapped in the APIResponse envelope.
type VendorSearchController struct {
	searchService service.VendorSearchService
}

func NewVendorSearchController(searchService service.VendorSearchService) *VendorSearchController {
	return &VendorSearchController{searchService: searchService}
}

// Search handles GET /api/vendors/search?city=&state=&category=
func (vc *VendorSearchController) Search(c *gin.Context) {
	var q models.VendorSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	body := vc.searchService.Search(c.Request.Context(), yelp.Query{
		City:     q.City,
		State:    q.State,
		Category: q.Category,
	})
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
