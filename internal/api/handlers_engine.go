package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/pranaflow/prana-server/internal/api/respond"
	"github.com/pranaflow/prana-server/internal/api/validate"
	"github.com/pranaflow/prana-server/internal/services"
)

// EngineHandler is the thin transport layer over the progress engine.
// Conflict outcomes (already activated, nothing to recalibrate) are reported
// in-band with 200 responses; only validation and infrastructure failures map
// to error statuses.
type EngineHandler struct {
	engine             *services.Engine
	minReflectionChars int
	log                zerolog.Logger
}

// NewEngineHandler creates the handler.
func NewEngineHandler(engine *services.Engine, minReflectionChars int, log zerolog.Logger) *EngineHandler {
	return &EngineHandler{engine: engine, minReflectionChars: minReflectionChars, log: log}
}

// SubmitReflection handles POST /api/users/{userId}/reflections
func (h *EngineHandler) SubmitReflection(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.ReflectionText(req.Text, h.minReflectionChars); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	res, err := h.engine.SubmitReflection(r.Context(), userID, req.Text)
	if err != nil {
		h.writeEngineError(w, r, "submit_reflection", userID, err)
		return
	}
	respond.JSON(w, http.StatusCreated, res)
}

// ActivateChakra handles POST /api/users/{userId}/chakras/{chakraIndex}/activate
func (h *EngineHandler) ActivateChakra(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	idx, err := strconv.Atoi(vars["chakraIndex"])
	if err != nil {
		respond.BadRequest(w, "chakraIndex must be an integer")
		return
	}
	if err := validate.ChakraIndex(idx); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	res, err := h.engine.ActivateChakra(r.Context(), userID, idx)
	if err != nil {
		h.writeEngineError(w, r, "activate_chakra", userID, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// Recalibrate handles POST /api/users/{userId}/recalibrations
func (h *EngineHandler) Recalibrate(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req struct {
		ReflectionText string `json:"reflectionText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.ReflectionText(req.ReflectionText, h.minReflectionChars); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	res, err := h.engine.Recalibrate(r.Context(), userID, req.ReflectionText)
	if err != nil {
		h.writeEngineError(w, r, "recalibrate", userID, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// GetProgress handles GET /api/users/{userId}/progress
func (h *EngineHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if err := validate.UserID(userID); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	res, err := h.engine.GetProgress(r.Context(), userID)
	if err != nil {
		h.writeEngineError(w, r, "get_progress", userID, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// writeEngineError maps engine errors onto HTTP statuses. Anything that is
// not a validation error is treated as transient infrastructure failure and
// logged with enough context for a retry decision.
func (h *EngineHandler) writeEngineError(w http.ResponseWriter, r *http.Request, op, userID string, err error) {
	if services.IsValidationError(err) {
		respond.BadRequest(w, err.Error())
		return
	}
	h.log.Error().Stack().
		Err(err).
		Str("operation", op).
		Str("user_id", userID).
		Str("url", r.URL.String()).
		Msg("engine operation failed")
	respond.InternalError(w, err.Error())
}
