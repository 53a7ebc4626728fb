package service

import (
	"skyglance.app/models"
	"skyglance.app/widget"
)

// WeatherServiceInterface defines the interface for one-shot weather lookups
type WeatherServiceInterface interface {
	GetSnapshot(city string) (*models.WeatherSnapshot, error)
}

// WidgetSessionServiceInterface manages per-session widget controllers
type WidgetSessionServiceInterface interface {
	GetOrCreate(sessionID string) (string, *widget.Controller)
	Session(sessionID string) (*widget.Controller, bool)
}

// Ensure implementations satisfy interfaces
var _ WeatherServiceInterface = (*WeatherService)(nil)
var _ WidgetSessionServiceInterface = (*WidgetSessionService)(nil)
