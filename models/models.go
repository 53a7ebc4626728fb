// Package models defines data structures used throughout the application
package models

// WeatherSnapshot represents one fetched weather observation for a location.
// A snapshot is immutable once built and is replaced wholesale on each new
// search; it is never mutated field by field.
type WeatherSnapshot struct {
	LocationName         string  `json:"location_name"`
	CountryCode          string  `json:"country_code"`
	Temperature          float64 `json:"temperature"`
	FeelsLike            float64 `json:"feels_like"`
	TempMin              float64 `json:"temp_min"`
	TempMax              float64 `json:"temp_max"`
	HumidityPercent      int     `json:"humidity_percent"`
	PressureHPa          float64 `json:"pressure_hpa"`
	WindSpeedMs          float64 `json:"wind_speed_ms"`
	ConditionCode        string  `json:"condition_code"`
	ConditionDescription string  `json:"condition_description"`
	ObservedAtUtc        int64   `json:"observed_at_utc"`
	UtcOffsetSeconds     int64   `json:"utc_offset_seconds"`
	SunriseUtc           int64   `json:"sunrise_utc"`
	SunsetUtc            int64   `json:"sunset_utc"`
	StatusCode           int     `json:"status_code"`
}

// WeatherQuery represents the query parameters for a one-shot weather lookup
type WeatherQuery struct {
	City string `form:"city" binding:"required"`
}

// SearchRequest represents data for a widget search. City is deliberately
// not required: a blank submit is a no-op on the widget, not an error.
type SearchRequest struct {
	City string `json:"city" form:"city"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
