package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"skyglance.app/models"
)

func TestIsDaytime(t *testing.T) {
	// Sunrise 06:00 UTC, sunset 18:00 UTC on 2024-03-21
	sunrise := int64(1711000800)
	sunset := sunrise + 12*3600

	tests := []struct {
		name     string
		observed int64
		offset   int64
		expected bool
	}{
		{"Midday", sunrise + 6*3600, 0, true},
		{"BeforeSunrise", sunrise - 1, 0, false},
		{"AfterSunset", sunset + 1, 0, false},
		{"ExactlySunrise", sunrise, 0, true},
		{"ExactlySunset", sunset, 0, true},
		{"MiddayWithOffset", sunrise + 6*3600, 7200, true},
		{"NightWithOffset", sunset + 3600, -3600, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDaytime(tt.observed, tt.offset, sunrise, sunset))
		})
	}
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		name     string
		celsius  float64
		expected string
	}{
		{"RoundsHalfUp", 19.5, "20°C"},
		{"RoundsDown", 19.4, "19°C"},
		{"NegativeNearZeroIsNotMinusZero", -0.4, "0°C"},
		{"Negative", -5.6, "-6°C"},
		{"Zero", 0, "0°C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTemperature(tt.celsius))
		})
	}
}

func TestFormatLocalTimeAndDate(t *testing.T) {
	// 2024-03-21 12:00:00 UTC
	observed := time.Date(2024, 3, 21, 12, 0, 0, 0, time.UTC).Unix()

	t.Run("UTCOffset", func(t *testing.T) {
		assert.Equal(t, "12:00", FormatLocalTime(observed, 0))
		assert.Equal(t, "Thursday, 21 March", FormatLocalDate(observed, 0))
	})

	t.Run("PositiveOffsetShiftsClock", func(t *testing.T) {
		// UTC+5h30: Kathmandu-style offset
		assert.Equal(t, "17:30", FormatLocalTime(observed, 5*3600+1800))
	})

	t.Run("NegativeOffsetCrossesDateBoundary", func(t *testing.T) {
		// 2024-03-21 01:00 UTC at UTC-2 is still the previous day
		early := time.Date(2024, 3, 21, 1, 0, 0, 0, time.UTC).Unix()
		assert.Equal(t, "23:00", FormatLocalTime(early, -2*3600))
		assert.Equal(t, "Wednesday, 20 March", FormatLocalDate(early, -2*3600))
	})

	t.Run("IndependentOfHostTimezone", func(t *testing.T) {
		// The formatter must never apply a second, host-local offset.
		loc, err := time.LoadLocation("America/New_York")
		if err == nil {
			defer func(prev *time.Location) { time.Local = prev }(time.Local)
			time.Local = loc
		}
		assert.Equal(t, "12:00", FormatLocalTime(observed, 0))
		assert.Equal(t, "15:00", FormatLocalTime(observed, 3*3600))
	})
}

func TestSelectIcon(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		daytime  bool
		expected Icon
	}{
		{"ClearDay", "01d", true, IconClearDay},
		{"ClearNight", "01n", false, IconClearNight},
		{"PartlyCloudyDay", "02d", true, IconPartlyCloudyDay},
		{"PartlyCloudyNight", "02n", false, IconPartlyCloudyNight},
		{"ScatteredClouds", "03d", true, IconOvercast},
		{"BrokenClouds", "04n", false, IconOvercast},
		{"ShowerRain", "09d", true, IconRain},
		{"Rain", "10n", false, IconRain},
		{"Thunderstorm", "11d", true, IconThunderstorm},
		{"Snow", "13n", false, IconSnow},
		{"Mist", "50d", true, IconFog},
		{"UnknownCodeFallsBack", "99x", true, IconDefault},
		{"TooShortCodeFallsBack", "1", true, IconDefault},
		{"EmptyCodeFallsBack", "", false, IconDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectIcon(tt.code, tt.daytime))
		})
	}
}

func TestSelectTheme(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		daytime  bool
		expected Theme
	}{
		{"ClearDay", "01d", true, ThemeClearDay},
		{"ClearNight", "01n", false, ThemeClearNight},
		{"PartlyCloudyDay", "02d", true, ThemePartlyCloudyDay},
		{"PartlyCloudyNight", "02n", false, ThemePartlyCloudyNight},
		{"Overcast", "04d", true, ThemeOvercast},
		{"ShowerRain", "09d", true, ThemeRain},
		{"Rain", "10d", true, ThemeRain},
		{"Thunderstorm", "11n", false, ThemeThunderstorm},
		{"Snow", "13d", true, ThemeSnow},
		{"Fog", "50n", false, ThemeFog},
		{"UnknownCodeFallsBack", "99x", true, ThemeDefault},
		{"NoConditionYet", "", true, ThemeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectTheme(tt.code, tt.daytime))
		})
	}
}

func TestBuildViewModel(t *testing.T) {
	observed := time.Date(2024, 3, 21, 12, 0, 0, 0, time.UTC).Unix()
	snapshot := &models.WeatherSnapshot{
		LocationName:         "Paris",
		CountryCode:          "FR",
		Temperature:          19.5,
		FeelsLike:            18.2,
		TempMin:              14.9,
		TempMax:              21.3,
		HumidityPercent:      65,
		PressureHPa:          1013,
		WindSpeedMs:          4.12,
		ConditionCode:        "02d",
		ConditionDescription: "few clouds",
		ObservedAtUtc:        observed,
		UtcOffsetSeconds:     3600,
		SunriseUtc:           observed - 6*3600,
		SunsetUtc:            observed + 6*3600,
		StatusCode:           200,
	}

	vm := BuildViewModel(snapshot)

	assert.Equal(t, "Paris, FR", vm.Location)
	assert.Equal(t, "20°C", vm.Temperature)
	assert.Equal(t, "18°C", vm.FeelsLike)
	assert.Equal(t, "15°C", vm.TempMin)
	assert.Equal(t, "21°C", vm.TempMax)
	assert.Equal(t, "65%", vm.Humidity)
	assert.Equal(t, "1013 hPa", vm.Pressure)
	assert.Equal(t, "4.1 m/s", vm.WindSpeed)
	assert.Equal(t, "few clouds", vm.Description)
	assert.Equal(t, "13:00", vm.ObservedTime)
	assert.Equal(t, "Thursday, 21 March", vm.ObservedDate)
	assert.True(t, vm.Daytime)
	assert.Equal(t, IconPartlyCloudyDay, vm.Icon)
	assert.Equal(t, ThemePartlyCloudyDay, vm.Theme)
}

func TestBuildViewModelWithoutCountry(t *testing.T) {
	snapshot := &models.WeatherSnapshot{
		LocationName:  "Atlantis",
		ConditionCode: "10d",
		ObservedAtUtc: 1711022400,
	}

	vm := BuildViewModel(snapshot)

	assert.Equal(t, "Atlantis", vm.Location)
	assert.Equal(t, IconRain, vm.Icon)
	assert.Equal(t, ThemeRain, vm.Theme)
}
