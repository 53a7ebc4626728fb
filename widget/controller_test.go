package widget

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "skyglance.app/errors"
	"skyglance.app/models"
)

type fakeProvider struct {
	calls    int
	snapshot *models.WeatherSnapshot
	err      error
}

func (p *fakeProvider) FetchSnapshot(city string) (*models.WeatherSnapshot, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.snapshot, nil
}

func parisSnapshot() *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		LocationName:  "Paris",
		CountryCode:   "FR",
		Temperature:   19.5,
		ConditionCode: "02d",
		StatusCode:    200,
	}
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeProvider{})

	state := c.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Empty(t, state.Query)
	assert.Nil(t, state.Snapshot)
	assert.Empty(t, state.ErrorMessage)
}

func TestController_Submit(t *testing.T) {
	t.Run("TransitionsToLoadingSynchronously", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, ok := c.Submit("Paris")

		assert.True(t, ok)
		assert.NotZero(t, token)
		state := c.State()
		assert.Equal(t, PhaseLoading, state.Phase)
		assert.Equal(t, "Paris", state.Query)
	})

	t.Run("EmptyQueryIsNoOp", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		_, ok := c.Submit("")
		assert.False(t, ok)
		_, ok = c.Submit("   \t ")
		assert.False(t, ok)

		assert.Equal(t, PhaseIdle, c.State().Phase)
	})

	t.Run("TrimsQuery", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		_, ok := c.Submit("  Paris  ")
		assert.True(t, ok)
		assert.Equal(t, "Paris", c.State().Query)
	})

	t.Run("ClearsPriorSnapshotBeforeResolution", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Paris")
		c.Resolve(token, parisSnapshot(), nil)
		require.Equal(t, PhaseSuccess, c.State().Phase)

		c.Submit("London")

		state := c.State()
		assert.Equal(t, PhaseLoading, state.Phase)
		assert.Nil(t, state.Snapshot)
		assert.Empty(t, state.ErrorMessage)
	})

	t.Run("ClearsPriorErrorBeforeResolution", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Nowhere")
		c.Resolve(token, nil, apperrors.NewNotFoundError("city not found"))
		require.Equal(t, PhaseError, c.State().Phase)

		c.Submit("Paris")

		state := c.State()
		assert.Equal(t, PhaseLoading, state.Phase)
		assert.Empty(t, state.ErrorMessage)
	})
}

func TestController_Resolve(t *testing.T) {
	t.Run("SuccessfulFetch", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Paris")
		c.Resolve(token, parisSnapshot(), nil)

		state := c.State()
		assert.Equal(t, PhaseSuccess, state.Phase)
		require.NotNil(t, state.Snapshot)
		assert.Equal(t, "Paris", state.Snapshot.LocationName)
		assert.Empty(t, state.ErrorMessage)
	})

	t.Run("NotFound", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Zzzzznotacity")
		c.Resolve(token, nil, apperrors.NewNotFoundError("city not found"))

		state := c.State()
		assert.Equal(t, PhaseError, state.Phase)
		assert.Nil(t, state.Snapshot)
		assert.Equal(t, "City not found. Please enter a valid city name.", state.ErrorMessage)
	})

	t.Run("GenericFailure", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Paris")
		c.Resolve(token, nil, apperrors.NewExternalAPIError("HTTP 500 error", nil))

		state := c.State()
		assert.Equal(t, PhaseError, state.Phase)
		assert.Equal(t, MessageGenericFailure, state.ErrorMessage)
	})

	t.Run("UnexpectedFailureUsesCauseMessage", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Paris")
		cause := fmt.Errorf("connection refused")
		c.Resolve(token, nil, apperrors.NewUnexpectedError("request failed", cause))

		assert.Equal(t, "connection refused", c.State().ErrorMessage)
	})

	t.Run("UnexpectedFailureWithoutCauseFallsBack", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Paris")
		c.Resolve(token, nil, apperrors.New(apperrors.UnexpectedError, "request failed"))

		assert.Equal(t, MessageGenericFailure, c.State().ErrorMessage)
	})

	t.Run("NonAppErrorFallsBack", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Paris")
		c.Resolve(token, nil, fmt.Errorf("boom"))

		assert.Equal(t, MessageGenericFailure, c.State().ErrorMessage)
	})

	t.Run("StaleTokenIsDiscarded", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		firstToken, _ := c.Submit("Paris")
		secondToken, _ := c.Submit("London")

		london := &models.WeatherSnapshot{LocationName: "London", CountryCode: "GB"}
		c.Resolve(secondToken, london, nil)

		// The first search resolves late; its snapshot must not clobber
		// the newer result.
		c.Resolve(firstToken, parisSnapshot(), nil)

		state := c.State()
		assert.Equal(t, PhaseSuccess, state.Phase)
		require.NotNil(t, state.Snapshot)
		assert.Equal(t, "London", state.Snapshot.LocationName)
	})
}

func TestController_Dismiss(t *testing.T) {
	t.Run("ClearsErrorAndQuery", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Nowhere")
		c.Resolve(token, nil, apperrors.NewNotFoundError("city not found"))
		require.Equal(t, PhaseError, c.State().Phase)

		c.Dismiss()

		state := c.State()
		assert.Equal(t, PhaseIdle, state.Phase)
		assert.Empty(t, state.Query)
		assert.Empty(t, state.ErrorMessage)
	})

	t.Run("NoOpOutsideErrorState", func(t *testing.T) {
		c := NewController(&fakeProvider{})

		token, _ := c.Submit("Paris")
		c.Resolve(token, parisSnapshot(), nil)

		c.Dismiss()

		state := c.State()
		assert.Equal(t, PhaseSuccess, state.Phase)
		assert.NotNil(t, state.Snapshot)
	})
}

func TestController_Search(t *testing.T) {
	t.Run("SuccessfulSearch", func(t *testing.T) {
		provider := &fakeProvider{snapshot: parisSnapshot()}
		c := NewController(provider)

		state := c.Search("Paris")

		assert.Equal(t, PhaseSuccess, state.Phase)
		require.NotNil(t, state.Snapshot)
		assert.Equal(t, "Paris", state.Snapshot.LocationName)
		assert.Equal(t, 1, provider.calls)
	})

	t.Run("EmptyQueryIssuesNoFetch", func(t *testing.T) {
		provider := &fakeProvider{snapshot: parisSnapshot()}
		c := NewController(provider)

		state := c.Search("   ")

		assert.Equal(t, PhaseIdle, state.Phase)
		assert.Equal(t, 0, provider.calls)
	})

	t.Run("FailedSearch", func(t *testing.T) {
		provider := &fakeProvider{err: apperrors.NewNotFoundError("city not found")}
		c := NewController(provider)

		state := c.Search("Zzzzznotacity")

		assert.Equal(t, PhaseError, state.Phase)
		assert.Equal(t, MessageCityNotFound, state.ErrorMessage)
	})
}
