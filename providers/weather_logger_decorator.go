package providers

import (
	"time"

	"skyglance.app/models"
	"skyglance.app/pkg/logger"
)

// WeatherLoggerDecorator logs every fetch through the wrapped provider with
// its outcome and duration
type WeatherLoggerDecorator struct {
	wrappedProvider WeatherProvider
	log             *logger.Logger
	providerName    string
}

func NewWeatherLoggerDecorator(provider WeatherProvider, log *logger.Logger, providerName string) WeatherProvider {
	return &WeatherLoggerDecorator{
		wrappedProvider: provider,
		log:             log,
		providerName:    providerName,
	}
}

func (d *WeatherLoggerDecorator) FetchSnapshot(city string) (*models.WeatherSnapshot, error) {
	d.log.Debug("fetching weather", "provider", d.providerName, "city", city)
	startTime := time.Now()

	snapshot, err := d.wrappedProvider.FetchSnapshot(city)
	duration := time.Since(startTime)

	if err != nil {
		d.log.Error("weather fetch failed",
			"provider", d.providerName, "city", city, "error", err, "duration", duration)
		return nil, err
	}

	d.log.Info("weather fetched",
		"provider", d.providerName, "city", city,
		"location", snapshot.LocationName, "condition", snapshot.ConditionCode,
		"duration", duration)
	return snapshot, nil
}
