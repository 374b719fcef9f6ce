package license

import "time"

// License is the singleton Teams license counter set. Free is derived, never
// stored independently.
type License struct {
	Total          int              `json:"total"`
	Assigned       int              `json:"assigned"`
	Free           int              `json:"free"`
	CostPerLicense float64          `json:"cost_per_license"`
	PerCompany     map[string]int   `json:"per_company"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Normalize recomputes derived counters and clamps negatives.
func (l *License) Normalize() {
	if l.Total < 0 {
		l.Total = 0
	}
	if l.Assigned < 0 {
		l.Assigned = 0
	}
	if l.Assigned > l.Total {
		l.Assigned = l.Total
	}
	l.Free = l.Total - l.Assigned
	if l.PerCompany == nil {
		l.PerCompany = map[string]int{}
	}
}
