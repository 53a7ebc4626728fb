// Package widget holds the lookup widget's UI state machine. A controller
// owns the state for one widget session: the query text, the pending-fetch
// flag, and the last snapshot or error. State lives in memory only.
package widget

import (
	stderrors "errors"
	"strings"
	"sync"

	"skyglance.app/errors"
	"skyglance.app/models"
	"skyglance.app/providers"
)

// Phase is the widget's current lifecycle state
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// User-facing messages for failed searches
const (
	MessageCityNotFound   = "City not found. Please enter a valid city name."
	MessageGenericFailure = "An error occurred while fetching weather data. Please try again."
)

// State is an immutable view of the controller at one point in time.
// Exactly one of {no snapshot, snapshot, error message} is populated.
type State struct {
	Phase        Phase
	Query        string
	Snapshot     *models.WeatherSnapshot
	ErrorMessage string
}

// Controller drives the idle -> loading -> success|error machine for one
// widget session. Methods are safe for concurrent use: resolutions racing
// from parallel submissions are serialized here, and a resolution carrying a
// stale request token is discarded so the last submitted search wins.
type Controller struct {
	mu       sync.Mutex
	provider providers.WeatherProvider

	phase        Phase
	query        string
	snapshot     *models.WeatherSnapshot
	errorMessage string

	nextToken    uint64
	currentToken uint64
}

func NewController(provider providers.WeatherProvider) *Controller {
	return &Controller{
		provider: provider,
		phase:    PhaseIdle,
	}
}

// Submit begins a new search. The query is trimmed first; a blank query is a
// no-op and reports ok=false without touching state. Otherwise any prior
// snapshot or error is cleared immediately, before the fetch resolves, and
// the returned token identifies the request for Resolve.
func (c *Controller) Submit(query string) (token uint64, ok bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextToken++
	c.currentToken = c.nextToken

	c.phase = PhaseLoading
	c.query = trimmed
	c.snapshot = nil
	c.errorMessage = ""

	return c.currentToken, true
}

// Resolve applies the outcome of the fetch identified by token. Outcomes for
// superseded submissions are discarded.
func (c *Controller) Resolve(token uint64, snapshot *models.WeatherSnapshot, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.currentToken {
		return
	}

	if err != nil {
		c.phase = PhaseError
		c.snapshot = nil
		c.errorMessage = MessageFor(err)
		return
	}

	c.phase = PhaseSuccess
	c.snapshot = snapshot
	c.errorMessage = ""
}

// Dismiss acknowledges an error, clearing the message and query and
// returning the widget to idle. It does nothing outside the error state.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseError {
		return
	}

	c.phase = PhaseIdle
	c.query = ""
	c.errorMessage = ""
}

// Search runs one full submit/fetch/resolve cycle synchronously and returns
// the resulting state. The fetch runs outside the lock so concurrent
// searches on the same session race only on the token guard.
func (c *Controller) Search(query string) State {
	token, ok := c.Submit(query)
	if !ok {
		return c.State()
	}

	snapshot, err := c.provider.FetchSnapshot(strings.TrimSpace(query))
	c.Resolve(token, snapshot, err)
	return c.State()
}

// State returns a copy of the current widget state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Phase:        c.phase,
		Query:        c.query,
		Snapshot:     c.snapshot,
		ErrorMessage: c.errorMessage,
	}
}

// MessageFor maps the error taxonomy to the user-facing message: not-found
// gets the dedicated message, transport surprises surface their own message
// when one exists, and everything else falls back to the generic failure.
func MessageFor(err error) string {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return MessageGenericFailure
	}

	switch appErr.Type {
	case errors.NotFoundError:
		return MessageCityNotFound
	case errors.UnexpectedError:
		if appErr.Cause != nil && appErr.Cause.Error() != "" {
			return appErr.Cause.Error()
		}
		return MessageGenericFailure
	default:
		return MessageGenericFailure
	}
}
