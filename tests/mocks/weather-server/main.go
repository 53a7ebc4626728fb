// Mock OpenWeatherMap server for local development. Point the widget at it
// with WEATHER_API_BASE_URL=http://localhost:9090 and any WEATHER_API_KEY.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type payload struct {
	Name     string                 `json:"name"`
	Main     map[string]float64     `json:"main"`
	Weather  []map[string]string    `json:"weather"`
	Wind     map[string]float64     `json:"wind"`
	Sys      map[string]interface{} `json:"sys"`
	Dt       int64                  `json:"dt"`
	Timezone int64                  `json:"timezone"`
	Cod      int                    `json:"cod"`
}

func city(name, country, icon, description string, temp float64, offset int64) payload {
	now := time.Now().UTC()
	sunrise := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, time.UTC)

	return payload{
		Name: name,
		Main: map[string]float64{
			"temp":       temp,
			"feels_like": temp - 1.2,
			"temp_min":   temp - 3,
			"temp_max":   temp + 2,
			"humidity":   71,
			"pressure":   1015,
		},
		Weather: []map[string]string{{"main": description, "description": strings.ToLower(description), "icon": icon}},
		Wind:    map[string]float64{"speed": 3.6},
		Sys: map[string]interface{}{
			"country": country,
			"sunrise": sunrise.Unix(),
			"sunset":  sunrise.Add(12 * time.Hour).Unix(),
		},
		Dt:       now.Unix(),
		Timezone: offset,
		Cod:      200,
	}
}

var weatherData = map[string]payload{
	"london": city("London", "GB", "10d", "Light rain", 14.3, 0),
	"paris":  city("Paris", "FR", "02d", "Few clouds", 18.6, 3600),
	"tokyo":  city("Tokyo", "JP", "01n", "Clear sky", 22.1, 9*3600),
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/weather", func(c *gin.Context) {
		if c.Query("appid") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"cod": "401", "message": "Invalid API key"})
			return
		}

		name := strings.ToLower(c.Query("q"))
		data, found := weatherData[name]
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
			return
		}

		c.JSON(http.StatusOK, data)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	slog.Info("Mock weather server listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
