package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

type BachelorTripController struct {
	tripService service.BachelorTripService
}

func NewBachelorTripController(tripService service.BachelorTripService) *BachelorTripController {
	return &BachelorTripController{tripService: tripService}
}

// Get handles GET /api/bachelor-trip. A user without a trip gets null data.
func (bc *BachelorTripController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	trip, err := bc.tripService.Get(c.Request.Context(), userID)
	if errors.Is(err, service.ErrTripNotFound) {
		c.JSON(http.StatusOK, models.OK[*entities.BachelorTrip](nil))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(trip))
}

// Plan handles POST /api/bachelor-trip/create
func (bc *BachelorTripController) Plan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.PlanTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	trip, err := bc.tripService.Plan(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(trip))
}

// Delete handles DELETE /api/bachelor-trip
func (bc *BachelorTripController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := bc.tripService.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OKMessage("Bachelor trip deleted successfully"))
}

// MarkPaid handles PUT /api/bachelor-trip/expenses/:id/paid
func (bc *BachelorTripController) MarkPaid(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	expense, err := bc.tripService.MarkExpensePaid(c.Request.Context(), userID, c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(expense))
}
