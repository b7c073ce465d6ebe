package entities

import "time"

type TripEventType string

const (
	EventBachelor     TripEventType = "bachelor"
	EventBachelorette TripEventType = "bachelorette"
)

type TripStatus string

const (
	TripPlanning  TripStatus = "planning"
	TripConfirmed TripStatus = "confirmed"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

type ExpenseCategory string

const (
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseFlights       ExpenseCategory = "flights"
	ExpenseActivities    ExpenseCategory = "activities"
	ExpenseFood          ExpenseCategory = "food"
	ExpenseTransport     ExpenseCategory = "transport"
	ExpenseOther         ExpenseCategory = "other"
)

// BachelorTrip is the bachelor or bachelorette party a user organizes. Like
// the wedding it is one document per user, and attendees, expenses, flights
// and stays live inside it.
type BachelorTrip struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"` // organizer
	EventName       string         `json:"eventName"`
	EventType       TripEventType  `json:"eventType"`
	TripDate        time.Time      `json:"tripDate"`
	Location        TripLocation   `json:"location"`
	EstimatedBudget float64        `json:"estimatedBudget"`
	Attendees       []TripAttendee `json:"attendees"`
	Expenses        []TripExpense  `json:"expenses"`
	Flights         []TripFlight   `json:"flights"`
	Stays           []TripStay     `json:"stays"`
	TotalExpenses   float64        `json:"totalExpenses"` // sum of expense amounts, kept by the service
	Status          TripStatus     `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// NewBachelorTrip returns a trip in the planning state with non-nil lists.
func NewBachelorTrip(id, userID string, now time.Time) *BachelorTrip {
	return &BachelorTrip{
		ID:        id,
		UserID:    userID,
		Attendees: []TripAttendee{},
		Expenses:  []TripExpense{},
		Flights:   []TripFlight{},
		Stays:     []TripStay{},
		Status:    TripPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type TripLocation struct {
	City    string `json:"city" binding:"required"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Address string `json:"address,omitempty"`
}

type TripAttendee struct {
	ID     string `json:"id"`
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email,omitempty" binding:"omitempty,email"`
	Phone  string `json:"phone,omitempty"`
}

// ExpenseShare is what one participant owes towards an expense.
type ExpenseShare struct {
	UserID string  `json:"userId" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
	Paid   bool    `json:"paid"`
}

type TripExpense struct {
	ID           string          `json:"id"`
	Description  string          `json:"description" binding:"required"`
	Amount       float64         `json:"amount" binding:"gt=0"`
	Category     ExpenseCategory `json:"category" binding:"omitempty,oneof=accommodation flights activities food transport other"`
	PaidBy       string          `json:"paidBy" binding:"required"`
	SplitBetween []ExpenseShare  `json:"splitBetween" binding:"dive"`
	Date         time.Time       `json:"date"`
}

type FlightLeg struct {
	City string    `json:"city" binding:"required"`
	Time time.Time `json:"time" binding:"required"`
}

type TripFlight struct {
	ID           string    `json:"id"`
	Airline      string    `json:"airline,omitempty"`
	Departure    FlightLeg `json:"departure"`
	Arrival      FlightLeg `json:"arrival"`
	Price        float64   `json:"price" binding:"gte=0"`
	BookingURL   string    `json:"bookingUrl,omitempty" binding:"omitempty,url"`
	SavedByUsers []string  `json:"savedByUsers"`
}

type TripStay struct {
	ID            string       `json:"id"`
	Name          string       `json:"name" binding:"required"`
	Location      TripLocation `json:"location"`
	CheckIn       time.Time    `json:"checkIn" binding:"required"`
	CheckOut      time.Time    `json:"checkOut" binding:"required"`
	PricePerNight float64      `json:"pricePerNight" binding:"gte=0"`
	TotalNights   int          `json:"totalNights"` // derived from the dates
	BookingURL    string       `json:"bookingUrl,omitempty" binding:"omitempty,url"`
	SavedByUsers  []string     `json:"savedByUsers"`
}
