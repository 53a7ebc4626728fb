package providers

import "skyglance.app/models"

// WeatherProvider defines the interface for fetching one current-weather
// snapshot by city name
type WeatherProvider interface {
	FetchSnapshot(city string) (*models.WeatherSnapshot, error)
}
