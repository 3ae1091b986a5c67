package storage

// RateEntry is one line of the rate card. Discount lives only for the
// current session and is never written to the database.
type RateEntry struct {
	Role        string  `json:"role"`
	MonthlyRate float64 `json:"monthly_rate"`
	Discount    float64 `json:"discount,omitempty"`
}
