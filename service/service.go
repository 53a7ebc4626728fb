package service

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"skyglance.app/errors"
	"skyglance.app/models"
	"skyglance.app/providers"
	"skyglance.app/widget"
)

// WeatherService handles one-shot weather lookups
type WeatherService struct {
	provider providers.WeatherProvider
}

// NewWeatherService creates a new weather service with the specified provider
func NewWeatherService(provider providers.WeatherProvider) *WeatherService {
	return &WeatherService{
		provider: provider,
	}
}

// GetSnapshot retrieves the current weather observation for a city. The
// query is trimmed first; a blank query never reaches the provider.
func (s *WeatherService) GetSnapshot(city string) (*models.WeatherSnapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	slog.Debug("fetching snapshot", "city", city)

	snapshot, err := s.provider.FetchSnapshot(city)
	if err != nil {
		slog.Error("weather provider error", "error", err, "city", city)
		return nil, err
	}

	return snapshot, nil
}

// WidgetSessionService holds one widget controller per browser session,
// keyed by an opaque session id. Sessions exist in memory only and vanish
// on restart; there is no durable state behind them.
type WidgetSessionService struct {
	mu       sync.RWMutex
	sessions map[string]*widget.Controller
	provider providers.WeatherProvider
}

// NewWidgetSessionService creates an empty session registry backed by the
// given provider
func NewWidgetSessionService(provider providers.WeatherProvider) *WidgetSessionService {
	return &WidgetSessionService{
		sessions: make(map[string]*widget.Controller),
		provider: provider,
	}
}

// GetOrCreate returns the controller for sessionID, creating a fresh session
// when the id is empty or unknown. The returned id identifies the session
// the controller belongs to.
func (s *WidgetSessionService) GetOrCreate(sessionID string) (string, *widget.Controller) {
	if sessionID != "" {
		if controller, found := s.Session(sessionID); found {
			return sessionID, controller
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	controller := widget.NewController(s.provider)
	s.sessions[id] = controller

	slog.Debug("widget session created", "session_id", id)
	return id, controller
}

// Session looks up an existing widget session
func (s *WidgetSessionService) Session(sessionID string) (*widget.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	controller, found := s.sessions[sessionID]
	return controller, found
}
