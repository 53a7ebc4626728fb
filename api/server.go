package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"skyglance.app/config"
	"skyglance.app/display"
	weathererr "skyglance.app/errors"
	"skyglance.app/models"
	"skyglance.app/service"
	"skyglance.app/widget"
)

const sessionCookieName = "widget_session"

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	config         *config.Config
	weatherService service.WeatherServiceInterface
	widgetSessions service.WidgetSessionServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	weatherService service.WeatherServiceInterface,
	widgetSessions service.WidgetSessionServiceInterface,
) *Server {
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())

	server := &Server{
		router:         router,
		config:         config,
		weatherService: weatherService,
		widgetSessions: widgetSessions,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/widget/state", s.widgetState)
		api.POST("/widget/search", s.widgetSearch)
		api.POST("/widget/dismiss", s.widgetDismiss)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// requestLogger tags every request with a correlation id and logs its outcome
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		start := time.Now()
		c.Next()

		slog.Info("request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) getWeather(c *gin.Context) {
	var query models.WeatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, weathererr.NewValidationError("city parameter is required"))
		return
	}

	snapshot, err := s.weatherService.GetSnapshot(query.City)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, display.BuildViewModel(snapshot))
}

// widgetStateResponse is the rendered widget state returned to the page. The
// theme is always present so the page background can be styled before any
// successful fetch.
type widgetStateResponse struct {
	Phase   widget.Phase       `json:"phase"`
	Query   string             `json:"query"`
	Error   string             `json:"error,omitempty"`
	Weather *display.ViewModel `json:"weather,omitempty"`
	Theme   display.Theme      `json:"theme"`
}

func renderWidgetState(state widget.State) widgetStateResponse {
	response := widgetStateResponse{
		Phase: state.Phase,
		Query: state.Query,
		Error: state.ErrorMessage,
		Theme: display.SelectTheme("", false),
	}

	if state.Snapshot != nil {
		vm := display.BuildViewModel(state.Snapshot)
		response.Weather = &vm
		response.Theme = vm.Theme
	}

	return response
}

// session returns the widget controller for the caller's session cookie,
// issuing a fresh session and cookie when none exists
func (s *Server) session(c *gin.Context) *widget.Controller {
	cookieID, _ := c.Cookie(sessionCookieName)

	id, controller := s.widgetSessions.GetOrCreate(cookieID)
	if id != cookieID {
		c.SetCookie(sessionCookieName, id, 0, "/", "", false, true)
	}

	return controller
}

func (s *Server) widgetState(c *gin.Context) {
	controller := s.session(c)
	c.JSON(http.StatusOK, renderWidgetState(controller.State()))
}

func (s *Server) widgetSearch(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, weathererr.NewValidationError("invalid request format"))
		return
	}

	controller := s.session(c)
	state := controller.Search(req.City)

	c.JSON(http.StatusOK, renderWidgetState(state))
}

func (s *Server) widgetDismiss(c *gin.Context) {
	controller := s.session(c)
	controller.Dismiss()

	c.JSON(http.StatusOK, renderWidgetState(controller.State()))
}

// handleError maps the application error taxonomy onto HTTP statuses and
// user-facing messages
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *weathererr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case weathererr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case weathererr.NotFoundError:
			statusCode = http.StatusNotFound
			message = widget.MessageCityNotFound
		case weathererr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = widget.MessageGenericFailure
		case weathererr.UnexpectedError:
			statusCode = http.StatusInternalServerError
			message = widget.MessageFor(err)
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
