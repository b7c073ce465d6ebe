package models

// VendorSearchQuery is the query string of GET /api/vendors/search.
type VendorSearchQuery struct {
	City     string `form:"city" binding:"required"`
	State    string `form:"state"`
	Category string `form:"category"`
}
