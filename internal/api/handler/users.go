package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/screen-nudge/internal/api/respond"
	"github.com/albapepper/screen-nudge/internal/users"
)

const (
	maxBodyBytes = 64 << 10
	timeFormat   = time.RFC3339
)

var validAppStates = map[string]bool{
	"":           true,
	"active":     true,
	"background": true,
	"inactive":   true,
}

// UpsertResponse is returned by a successful preference update.
type UpsertResponse struct {
	Status  string `json:"status"`
	Created bool   `json:"created"`
}

// ActivityReport is the app-state payload the client sends on foreground changes.
type ActivityReport struct {
	Token      string    `json:"token"`
	LastActive Timestamp `json:"lastActive"`
	AppState   string    `json:"appState"`
}

// Timestamp accepts RFC 3339 strings or Unix epoch milliseconds.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = time.UnixMilli(ms)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("timestamp must be RFC 3339 or epoch milliseconds")
	}
	parsed, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return fmt.Errorf("timestamp must be RFC 3339 or epoch milliseconds")
	}
	t.Time = parsed
	return nil
}

// UpsertPreferences creates or updates a device's notification preferences.
// @Summary Upsert preferences
// @Description Creates or replaces a device's preferences. Tracking state restarts only when a feature is switched on.
// @Tags users
// @Accept json
// @Produce json
// @Param body body users.Preferences true "Preferences"
// @Success 200 {object} UpsertResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/preferences [post]
func (h *Handler) UpsertPreferences(w http.ResponseWriter, r *http.Request) {
	var p users.Preferences
	if err := decodeJSON(w, r, &p); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON", err.Error())
		return
	}

	_, created, err := h.registry.Upsert(p)
	if err != nil {
		if errors.Is(err, users.ErrInvalidPreferences) {
			respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_PREFERENCES", "Preferences failed validation", err.Error())
			return
		}
		h.logger.Error("upsert preferences failed", "token", p.Token, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not store preferences")
		return
	}

	h.logger.Info("Preferences stored", "token", p.Token, "created", created,
		"motivation", p.MotivationEnabled, "screen_time", p.ScreenTimeEnabled, "nudge", p.NudgeEnabled)
	respond.WriteJSONObject(w, http.StatusOK, UpsertResponse{Status: "ok", Created: created})
}

// ReportActivity records when the app was last in the foreground.
// @Summary Report app activity
// @Description Updates the device's last-active time. lastActive defaults to the server time.
// @Tags users
// @Accept json
// @Produce json
// @Param body body ActivityReport true "Activity report"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/activity [post]
func (h *Handler) ReportActivity(w http.ResponseWriter, r *http.Request) {
	var rep ActivityReport
	if err := decodeJSON(w, r, &rep); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body is not valid JSON", err.Error())
		return
	}
	if strings.TrimSpace(rep.Token) == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TOKEN", "token is required")
		return
	}
	if !validAppStates[rep.AppState] {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_APP_STATE", "appState must be active, background or inactive")
		return
	}

	at := rep.LastActive.Time
	if at.IsZero() {
		at = h.clock.Now()
	}
	if err := h.registry.ReportActivity(rep.Token, at); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Unknown token")
			return
		}
		h.logger.Error("report activity failed", "token", rep.Token, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not record activity")
		return
	}

	h.logger.Debug("Activity recorded", "token", rep.Token, "app_state", rep.AppState)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"lastActive": at.UTC().Format(timeFormat),
	})
}

// GetUser returns the stored state for a device.
// @Summary Get user state
// @Description Returns preferences and tracking state for a device token.
// @Tags users
// @Produce json
// @Param token path string true "Device token"
// @Success 200 {object} users.State
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/users/{token} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	token, err := url.PathUnescape(chi.URLParam(r, "token"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TOKEN", "token is not a valid path segment")
		return
	}
	s, ok := h.registry.Get(token)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Unknown token")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, s)
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("body must contain a single JSON object")
	}
	return nil
}
