package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_WritesStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"pointsEarned": 12})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 12, body["pointsEarned"])
}

func TestJSON_UnencodableValueYieldsCleanInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, http.StatusInternalServerError, p.Code)
}

func TestBadRequest_ProblemShape(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "chakraIndex must be between 0 and 6")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Bad Request", p.Error)
	assert.Equal(t, http.StatusBadRequest, p.Code)
	assert.Equal(t, "chakraIndex must be between 0 and 6", p.Message)
}

func TestInternalError_ProblemShape(t *testing.T) {
	rec := httptest.NewRecorder()
	InternalError(rec, "store unavailable")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, http.StatusInternalServerError, p.Code)
	assert.Equal(t, "store unavailable", p.Message)
}
