package domain

import "time"

// CareCategory groups care tariffs in the pricing grid.
type CareCategory struct {
	ID        string
	Name      string
	SortOrder int
	CreatedAt time.Time
}

// CareType is one billed act with its price.
type CareType struct {
	ID           string
	CategoryID   string
	CategoryName string
	Name         string
	Price        int
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
