package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
)

// errorBody is the failure shape the wizard's client decodes.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type companyView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type registerResponse struct {
	User    *User       `json:"user"`
	Company companyView `json:"company"`
	Token   string      `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

// Handler serves the register and health endpoints.
type Handler struct {
	store   *Store
	started time.Time
}

// NewHandler returns a handler backed by store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store, started: time.Now()}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var p signup.Payload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}

	if msg := validatePayload(p); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	log := logger.With("request_id", GetRequestID(r.Context()), "email", p.Email)

	user, company, err := h.store.Register(p)
	if errors.Is(err, ErrEmailTaken) {
		log.Info("register rejected: duplicate email")
		writeError(w, http.StatusConflict, "conflict", "Email already exists")
		return
	}
	if err != nil {
		log.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	token, err := newToken()
	if err != nil {
		log.Error("token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	log.Info("account created", "user_id", user.ID, "company", company.Name)
	writeJSON(w, http.StatusCreated, registerResponse{
		User:    user,
		Company: companyView{ID: company.ID, Name: company.Name},
		Token:   token,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"users":  h.store.Len(),
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// validatePayload returns the first server-side rejection, or "".
func validatePayload(p signup.Payload) string {
	switch {
	case strings.TrimSpace(p.Email) == "":
		return "Email is required"
	case !signup.ValidEmail(p.Email):
		return "Please enter a valid email address"
	case p.Password == "":
		return "Password is required"
	case len(p.Password) > maxPasswordBytes:
		return fmt.Sprintf("Password must be at most %d bytes", maxPasswordBytes)
	case strings.TrimSpace(p.CompanyName) == "":
		return "Company name is required"
	}
	return ""
}
