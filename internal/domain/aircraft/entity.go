package aircraft

import (
	"time"

	"github.com/google/uuid"
)

// Listing statuses
const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusSold   = "sold"
)

// Categories
const (
	CategoryPiston     = "piston"
	CategoryTurboprop  = "turboprop"
	CategoryJet        = "jet"
	CategoryHelicopter = "helicopter"
)

// Aircraft is one aircraft-for-sale listing
type Aircraft struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Make            string    `db:"make" json:"make"`
	Model           string    `db:"model" json:"model"`
	Year            int       `db:"year" json:"year"`
	Registration    string    `db:"registration" json:"registration"`
	Category        string    `db:"category" json:"category"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	Currency        string    `db:"currency" json:"currency"`
	TotalTimeHours  float64   `db:"total_time_hours" json:"total_time_hours"`
	EngineTimeHours float64   `db:"engine_time_hours" json:"engine_time_hours"`
	LocationCity    string    `db:"location_city" json:"location_city"`
	LocationCountry string    `db:"location_country" json:"location_country"`
	Description     string    `db:"description" json:"description"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Filter narrows a listing query
type Filter struct {
	Status        string
	Category      string
	Make          string
	PriceMinCents int64
	PriceMaxCents int64
	Limit         int
	Offset        int
}
