package cxo

import "time"

// CXO marks an email as belonging to a group-level executive. The employee
// hierarchy endpoint annotates matching roster rows with this flag.
type CXO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
