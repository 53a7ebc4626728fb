// Package display contains the pure presentation derivations for a weather
// snapshot: day/night determination, icon and background theme selection,
// and temperature/date/time formatting. Everything here is deterministic
// and free of side effects.
package display

import (
	"fmt"
	"math"
	"time"

	"skyglance.app/models"
)

// Icon identifies the pictogram rendered for a weather condition
type Icon string

const (
	IconClearDay          Icon = "clear-day"
	IconClearNight        Icon = "clear-night"
	IconPartlyCloudyDay   Icon = "partly-cloudy-day"
	IconPartlyCloudyNight Icon = "partly-cloudy-night"
	IconOvercast          Icon = "overcast"
	IconRain              Icon = "rain"
	IconThunderstorm      Icon = "thunderstorm"
	IconSnow              Icon = "snow"
	IconFog               Icon = "fog"
	IconDefault           Icon = "cloud"
)

// Theme identifies the background gradient applied behind the widget
type Theme string

const (
	ThemeClearDay          Theme = "clear-day"
	ThemeClearNight        Theme = "clear-night"
	ThemePartlyCloudyDay   Theme = "partly-cloudy-day"
	ThemePartlyCloudyNight Theme = "partly-cloudy-night"
	ThemeOvercast          Theme = "overcast"
	ThemeRain              Theme = "rain"
	ThemeThunderstorm      Theme = "thunderstorm"
	ThemeSnow              Theme = "snow"
	ThemeFog               Theme = "fog"
	ThemeDefault           Theme = "default"
)

// conditionGroup is the closed enumeration of provider condition categories.
// Provider condition codes are matched by their two-character prefix; an
// unrecognized prefix degrades to groupUnknown rather than erroring.
type conditionGroup int

const (
	groupClear conditionGroup = iota
	groupPartlyCloudy
	groupOvercast
	groupRain
	groupThunderstorm
	groupSnow
	groupFog
	groupUnknown
)

func groupForCode(conditionCode string) conditionGroup {
	if len(conditionCode) < 2 {
		return groupUnknown
	}
	switch conditionCode[:2] {
	case "01":
		return groupClear
	case "02":
		return groupPartlyCloudy
	case "03", "04":
		return groupOvercast
	case "09", "10":
		return groupRain
	case "11":
		return groupThunderstorm
	case "13":
		return groupSnow
	case "50":
		return groupFog
	default:
		return groupUnknown
	}
}

// IsDaytime reports whether the observation's local time falls within
// daylight hours. Local time is the UTC timestamp shifted by the location's
// UTC offset; both boundaries are inclusive.
func IsDaytime(observedAtUtc, utcOffsetSeconds, sunriseUtc, sunsetUtc int64) bool {
	local := observedAtUtc + utcOffsetSeconds
	sunriseLocal := sunriseUtc + utcOffsetSeconds
	sunsetLocal := sunsetUtc + utcOffsetSeconds
	return local >= sunriseLocal && local <= sunsetLocal
}

// FormatTemperature rounds to the nearest whole degree and appends the unit.
// Negative values that round to zero render as "0°C", never "-0°C".
func FormatTemperature(celsius float64) string {
	// int conversion collapses math.Round's negative zero, so -0.4 is "0°C"
	return fmt.Sprintf("%d°C", int(math.Round(celsius)))
}

// localClock returns the shifted timestamp in a fixed UTC zone. The shift
// itself encodes the location's local time; formatting in UTC keeps the host
// machine's own timezone out of the result.
func localClock(epochSeconds, utcOffsetSeconds int64) time.Time {
	return time.Unix(epochSeconds+utcOffsetSeconds, 0).UTC()
}

// FormatLocalTime renders the location's local clock time, e.g. "14:07"
func FormatLocalTime(epochSeconds, utcOffsetSeconds int64) string {
	return localClock(epochSeconds, utcOffsetSeconds).Format("15:04")
}

// FormatLocalDate renders the location's local date, e.g. "Friday, 21 March"
func FormatLocalDate(epochSeconds, utcOffsetSeconds int64) string {
	return localClock(epochSeconds, utcOffsetSeconds).Format("Monday, 2 January")
}

// SelectIcon maps a provider condition code to an icon, splitting clear and
// partly-cloudy skies into day/night variants
func SelectIcon(conditionCode string, daytime bool) Icon {
	switch groupForCode(conditionCode) {
	case groupClear:
		if daytime {
			return IconClearDay
		}
		return IconClearNight
	case groupPartlyCloudy:
		if daytime {
			return IconPartlyCloudyDay
		}
		return IconPartlyCloudyNight
	case groupOvercast:
		return IconOvercast
	case groupRain:
		return IconRain
	case groupThunderstorm:
		return IconThunderstorm
	case groupSnow:
		return IconSnow
	case groupFog:
		return IconFog
	default:
		return IconDefault
	}
}

// SelectTheme maps a provider condition code to a background theme using the
// same condition grouping as SelectIcon. An empty condition code (no fetch
// yet) selects the neutral default theme.
func SelectTheme(conditionCode string, daytime bool) Theme {
	if conditionCode == "" {
		return ThemeDefault
	}
	switch groupForCode(conditionCode) {
	case groupClear:
		if daytime {
			return ThemeClearDay
		}
		return ThemeClearNight
	case groupPartlyCloudy:
		if daytime {
			return ThemePartlyCloudyDay
		}
		return ThemePartlyCloudyNight
	case groupOvercast:
		return ThemeOvercast
	case groupRain:
		return ThemeRain
	case groupThunderstorm:
		return ThemeThunderstorm
	case groupSnow:
		return ThemeSnow
	case groupFog:
		return ThemeFog
	default:
		return ThemeDefault
	}
}

// ViewModel is the fully derived render payload for one snapshot
type ViewModel struct {
	Location     string `json:"location"`
	Temperature  string `json:"temperature"`
	FeelsLike    string `json:"feels_like"`
	TempMin      string `json:"temp_min"`
	TempMax      string `json:"temp_max"`
	Humidity     string `json:"humidity"`
	Pressure     string `json:"pressure"`
	WindSpeed    string `json:"wind_speed"`
	Description  string `json:"description"`
	ObservedDate string `json:"observed_date"`
	ObservedTime string `json:"observed_time"`
	Daytime      bool   `json:"daytime"`
	Icon         Icon   `json:"icon"`
	Theme        Theme  `json:"theme"`
}

// BuildViewModel composes all derivations over one snapshot
func BuildViewModel(snapshot *models.WeatherSnapshot) ViewModel {
	daytime := IsDaytime(
		snapshot.ObservedAtUtc,
		snapshot.UtcOffsetSeconds,
		snapshot.SunriseUtc,
		snapshot.SunsetUtc,
	)

	location := snapshot.LocationName
	if snapshot.CountryCode != "" {
		location = fmt.Sprintf("%s, %s", snapshot.LocationName, snapshot.CountryCode)
	}

	return ViewModel{
		Location:     location,
		Temperature:  FormatTemperature(snapshot.Temperature),
		FeelsLike:    FormatTemperature(snapshot.FeelsLike),
		TempMin:      FormatTemperature(snapshot.TempMin),
		TempMax:      FormatTemperature(snapshot.TempMax),
		Humidity:     fmt.Sprintf("%d%%", snapshot.HumidityPercent),
		Pressure:     fmt.Sprintf("%.0f hPa", snapshot.PressureHPa),
		WindSpeed:    fmt.Sprintf("%.1f m/s", snapshot.WindSpeedMs),
		Description:  snapshot.ConditionDescription,
		ObservedDate: FormatLocalDate(snapshot.ObservedAtUtc, snapshot.UtcOffsetSeconds),
		ObservedTime: FormatLocalTime(snapshot.ObservedAtUtc, snapshot.UtcOffsetSeconds),
		Daytime:      daytime,
		Icon:         SelectIcon(snapshot.ConditionCode, daytime),
		Theme:        SelectTheme(snapshot.ConditionCode, daytime),
	}
}
