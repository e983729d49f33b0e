package domain

import "time"

// Table represents a physical table of a venue
type Table struct {
	ID      string
	VenueID string
	// Number is a display label, not necessarily numeric or unique ("12", "Barra", "PRUEBA")
	Number string
	// Capacity is the number of seats; values <= 0 are replaced by the configured default
	Capacity int
	// IsActive nil means active (legacy records have no flag)
	IsActive  *bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active returns true unless the table was explicitly disabled
func (t *Table) Active() bool {
	return t.IsActive == nil || *t.IsActive
}

// EffectiveCapacity returns the capacity, substituting def for missing/invalid values
func (t *Table) EffectiveCapacity(def int) int {
	if t.Capacity > 0 {
		return t.Capacity
	}
	return def
}
