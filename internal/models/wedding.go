package models

import "time"

// UpdateWeddingRequest changes the top-level wedding details. Nil fields are
// left untouched.
type UpdateWeddingRequest struct {
	Date        *time.Time `json:"date"`
	Venue       *string    `json:"venue"`
	TotalBudget *float64   `json:"totalBudget" binding:"omitempty,gte=0"`
}

// WeddingSummary feeds the dashboard overview.
type WeddingSummary struct {
	TotalBudget    float64        `json:"totalBudget"`
	EstimatedTotal float64        `json:"estimatedTotal"`
	ActualTotal    float64        `json:"actualTotal"`
	PaidTotal      float64        `json:"paidTotal"`
	Remaining      float64        `json:"remaining"`
	GuestCount     int            `json:"guestCount"`
	RSVPCounts     map[string]int `json:"rsvpCounts"`
	SeatedGuests   int            `json:"seatedGuests"`
	TodosTotal     int            `json:"todosTotal"`
	TodosCompleted int            `json:"todosCompleted"`
	VendorsBooked  int            `json:"vendorsBooked"`
	DaysUntil      *int           `json:"daysUntil,omitempty"`
}
