package utils

import (
	"errors"
	"kiskibreak-service/internal/pkg/constvars"
	"kiskibreak-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSuccessResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	BuildSuccessResponse(rr, constvars.StatusOK, constvars.GetSlotsSuccessMessage, map[string]int{"total": 8})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.MIMEApplicationJSON, rr.Header().Get(constvars.HeaderContentType))
	assert.JSONEq(t, `{"success":true,"message":"get slots successfully","data":{"total":8}}`, rr.Body.String())
}

func TestBuildErrorResponse(t *testing.T) {
	t.Run("custom error keeps status and client message", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.AppEnvDevelopment)
		rr := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rr, exceptions.ErrGroupNotExist(nil, "g1"))

		var body exceptions.CustomError
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrClientGroupNotFound, body.ClientMessage)
		assert.Contains(t, body.DevMessage, "g1")
		assert.NotEmpty(t, body.Locations)
	})

	t.Run("production hides developer details", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.AppEnvProduction)
		rr := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rr, exceptions.ErrGroupNotExist(nil, "g1"))

		assert.NotContains(t, rr.Body.String(), "dev_message")
		assert.NotContains(t, rr.Body.String(), "locations")
	})

	t.Run("plain error is a 500", func(t *testing.T) {
		rr := httptest.NewRecorder()

		BuildErrorResponse(zap.NewNop(), rr, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrClientSomethingWrongWithApplication)
	})
}
