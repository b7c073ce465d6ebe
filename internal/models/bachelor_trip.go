package models

import (
	"time"

	"vivaha-be/internal/entities"
)

// PlanTripRequest is the body of POST /api/bachelor-trip/create. It creates
// the caller's trip or replaces the details of the existing one.
type PlanTripRequest struct {
	EventName       string                 `json:"eventName" binding:"required"`
	EventType       entities.TripEventType `json:"eventType" binding:"required,oneof=bachelor bachelorette"`
	TripDate        time.Time              `json:"tripDate" binding:"required"`
	Location        entities.TripLocation  `json:"location"`
	EstimatedBudget *float64               `json:"estimatedBudget" binding:"required,gte=0"`
	Status          entities.TripStatus    `json:"status" binding:"omitempty,oneof=planning confirmed completed cancelled"`
}

// MarkPaidRequest names the participant whose share of an expense is settled.
type MarkPaidRequest struct {
	UserID string `json:"userId" binding:"required"`
}
