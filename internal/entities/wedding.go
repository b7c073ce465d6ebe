package entities

import "time"

type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type VendorStatus string

const (
	VendorResearching VendorStatus = "researching"
	VendorContacted   VendorStatus = "contacted"
	VendorBooked      VendorStatus = "booked"
	VendorPaid        VendorStatus = "paid"
)

type TableShape string

const (
	ShapeRound     TableShape = "round"
	ShapeRectangle TableShape = "rectangle"
	ShapeSquare    TableShape = "square"
)

// Wedding is the aggregate root. Every nested entity is owned by exactly one
// Wedding and is persisted inside its document.
type Wedding struct {
	ID             string           `json:"id"`     // UUID
	UserID         string           `json:"userId"` // owning user
	Date           *time.Time       `json:"date,omitempty"`
	Venue          string           `json:"venue,omitempty"`
	TotalBudget    float64          `json:"totalBudget"`
	OnboardingData OnboardingData   `json:"onboardingData"`
	Guests         []Guest          `json:"guests"`
	Budget         []BudgetCategory `json:"budget"`
	Todos          []Todo           `json:"todos"`
	Vendors        []Vendor         `json:"vendors"`
	Seating        []SeatingTable   `json:"seating"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// NewWedding returns an empty wedding for userID with non-nil collections.
func NewWedding(id, userID string, now time.Time) *Wedding {
	return &Wedding{
		ID:        id,
		UserID:    userID,
		Guests:    []Guest{},
		Budget:    []BudgetCategory{},
		Todos:     []Todo{},
		Vendors:   []Vendor{},
		Seating:   []SeatingTable{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Guest struct {
	ID             string     `json:"id"`
	Name           string     `json:"name" binding:"required"`
	Email          string     `json:"email,omitempty" binding:"omitempty,email"`
	Phone          string     `json:"phone,omitempty"`
	RSVPStatus     RSVPStatus `json:"rsvpStatus" binding:"omitempty,oneof=pending accepted declined"`
	MealPreference string     `json:"mealPreference,omitempty"`
	PlusOne        bool       `json:"plusOne"`
	Group          string     `json:"group,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// BudgetCategory tracks one line of the budget. Paid is expected to stay at or
// below Actual but that is not enforced.
type BudgetCategory struct {
	ID              string  `json:"id"`
	Name            string  `json:"name" binding:"required"`
	EstimatedAmount float64 `json:"estimatedAmount" binding:"gte=0"`
	ActualAmount    float64 `json:"actualAmount" binding:"gte=0"`
	Paid            float64 `json:"paid" binding:"gte=0"`
	Notes           string  `json:"notes,omitempty"`
}

type Location struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

type Todo struct {
	ID                      string     `json:"id"`
	Title                   string     `json:"title" binding:"required"`
	Description             string     `json:"description,omitempty"`
	DueDate                 *time.Time `json:"dueDate,omitempty"`
	Completed               bool       `json:"completed"`
	Priority                Priority   `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category                string     `json:"category"`
	AssignedTo              string     `json:"assignedTo,omitempty"`
	Location                *Location  `json:"location,omitempty"`
	Rating                  *float64   `json:"rating,omitempty" binding:"omitempty,gte=0,lte=5"`
	Specialties             []string   `json:"specialties,omitempty"`
	ReligiousAccommodations []string   `json:"religiousAccommodations,omitempty"`
}

type Vendor struct {
	ID            string       `json:"id"`
	Name          string       `json:"name" binding:"required"`
	Category      string       `json:"category" binding:"required"`
	ContactPerson string       `json:"contactPerson,omitempty"`
	Email         string       `json:"email,omitempty" binding:"omitempty,email"`
	Phone         string       `json:"phone,omitempty"`
	Website       string       `json:"website,omitempty"`
	EstimatedCost *float64     `json:"estimatedCost,omitempty" binding:"omitempty,gte=0"`
	ActualCost    *float64     `json:"actualCost,omitempty" binding:"omitempty,gte=0"`
	DepositPaid   *float64     `json:"depositPaid,omitempty" binding:"omitempty,gte=0"`
	Status        VendorStatus `json:"status" binding:"omitempty,oneof=researching contacted booked paid"`
	Notes         string       `json:"notes,omitempty"`
}

// SeatingTable references guests by ID only. The references are reconciled
// when a guest is deleted.
type SeatingTable struct {
	ID       string     `json:"id"`
	Name     string     `json:"name" binding:"required"`
	Capacity int        `json:"capacity" binding:"gt=0"`
	Guests   []string   `json:"guests"`
	Shape    TableShape `json:"shape" binding:"omitempty,oneof=round rectangle square"`
}
