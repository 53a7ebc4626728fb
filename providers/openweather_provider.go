package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"skyglance.app/errors"
	"skyglance.app/models"
)

// OpenWeatherProvider fetches current weather from the OpenWeatherMap
// "current weather by city name" endpoint. One invocation issues at most one
// network call; a circuit breaker fails fast while the upstream is down.
type OpenWeatherProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// statusCode tolerates OpenWeatherMap's cod field arriving as either a JSON
// number (success) or a quoted string (error payloads)
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("parse cod field: %w", err)
	}
	*s = statusCode(n)
	return nil
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Dt       int64      `json:"dt"`
	Timezone int64      `json:"timezone"`
	Cod      statusCode `json:"cod"`
	Message  string     `json:"message,omitempty"`
}

// NewOpenWeatherProvider creates a provider against the given base URL,
// e.g. "https://api.openweathermap.org/data/2.5"
func NewOpenWeatherProvider(apiKey, baseURL string) WeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		circuit: cb,
	}
}

// FetchSnapshot retrieves the current weather observation for a city
func (p *OpenWeatherProvider) FetchSnapshot(city string) (*models.WeatherSnapshot, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	requestURL := fmt.Sprintf("%s/weather?%s", p.baseURL, values.Encode())

	result, err := p.circuit.Execute(func() (interface{}, error) {
		return p.httpClient.Get(requestURL)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errors.NewExternalAPIError("openweathermap circuit open", err)
		}
		return nil, errors.NewUnexpectedError("openweathermap request failed", err)
	}

	resp := result.(*http.Response)
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp.StatusCode)
	}

	var apiResponse openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewUnexpectedError("decode openweathermap response", err)
	}

	// A 200 transport status can still carry a payload-embedded not-found;
	// it is treated identically to an HTTP 404.
	if apiResponse.Cod == http.StatusNotFound {
		return nil, errors.NewNotFoundError("city not found")
	}
	if apiResponse.Cod != 0 && apiResponse.Cod != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("openweathermap: status %d", apiResponse.Cod),
			fmt.Errorf("%s", apiResponse.Message))
	}

	return p.convertToSnapshot(&apiResponse), nil
}

func (p *OpenWeatherProvider) handleHTTPError(httpStatus int) error {
	switch httpStatus {
	case http.StatusNotFound:
		return errors.NewNotFoundError("city not found")
	case http.StatusUnauthorized:
		return errors.NewExternalAPIError("openweathermap: invalid API key", nil)
	case http.StatusTooManyRequests:
		return errors.NewExternalAPIError("openweathermap: rate limit exceeded", nil)
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("openweathermap: HTTP %d error", httpStatus), nil)
	}
}

func (p *OpenWeatherProvider) convertToSnapshot(apiResp *openWeatherResponse) *models.WeatherSnapshot {
	conditionCode := ""
	description := "No description"
	if len(apiResp.Weather) > 0 {
		conditionCode = apiResp.Weather[0].Icon
		description = apiResp.Weather[0].Description
	}

	return &models.WeatherSnapshot{
		LocationName:         apiResp.Name,
		CountryCode:          apiResp.Sys.Country,
		Temperature:          apiResp.Main.Temp,
		FeelsLike:            apiResp.Main.FeelsLike,
		TempMin:              apiResp.Main.TempMin,
		TempMax:              apiResp.Main.TempMax,
		HumidityPercent:      apiResp.Main.Humidity,
		PressureHPa:          apiResp.Main.Pressure,
		WindSpeedMs:          apiResp.Wind.Speed,
		ConditionCode:        conditionCode,
		ConditionDescription: description,
		ObservedAtUtc:        apiResp.Dt,
		UtcOffsetSeconds:     apiResp.Timezone,
		SunriseUtc:           apiResp.Sys.Sunrise,
		SunsetUtc:            apiResp.Sys.Sunset,
		StatusCode:           int(apiResp.Cod),
	}
}
