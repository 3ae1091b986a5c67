package storage

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrModuleNotFound  = errors.New("module not found")
	ErrDuplicateRole   = errors.New("duplicate role")
	ErrDuplicateModule = errors.New("duplicate module id")
)

type Module struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	DesignDays            float64  `json:"design_days"`
	FrontendDays          float64  `json:"frontend_days"`
	BackendDays           float64  `json:"backend_days"`
	DesignPerformers      []string `json:"design_performers"`
	DevelopmentPerformers []string `json:"development_performers"`
	IsEnabled             bool     `json:"is_enabled"`
}

// Project keeps the quote settings of one estimate. A nil OverlapDays
// means design and development run fully in parallel.
type Project struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	DiscountPercentage float64  `json:"discount_percentage"`
	OverlapDays        *float64 `json:"overlap_days"`
}

type ProjectSettings struct {
	DiscountPercentage float64  `json:"discount_percentage"`
	OverlapDays        *float64 `json:"overlap_days"`
}

// ValidateSettings returns a message for the first bad value, or "".
func ValidateSettings(s ProjectSettings) string {
	if s.DiscountPercentage < 0 || s.DiscountPercentage > 100 {
		return "discount_percentage must be between 0 and 100"
	}
	if s.OverlapDays != nil && *s.OverlapDays < 0 {
		return "overlap_days must not be negative"
	}
	return ""
}
