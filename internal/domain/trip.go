package domain

import "time"

// Trip is a group of people sharing expenses. Members are the only valid
// payers and participants for the trip's expenses.
type Trip struct {
	ID        string
	Name      string
	Members   []string
	CreatedAt time.Time
}

// HasMember reports whether userID belongs to the trip.
func (t *Trip) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}
