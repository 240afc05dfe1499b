package criteria

import "time"

// weightEpsilon absorbs float accumulation noise when checking the 1.0 budget.
const weightEpsilon = 1e-9

// Criterion is a named, weighted scoring dimension used to evaluate candidates.
type Criterion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Weight      float64   `json:"weight"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WeightReport describes how much of the 1.0 active-weight budget is in use.
type WeightReport struct {
	IsValid      bool    `json:"isValid"`
	CurrentTotal float64 `json:"currentTotal"`
	Remaining    float64 `json:"remaining"`
}
