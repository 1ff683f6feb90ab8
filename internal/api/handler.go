package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eugenenazirov/buildconf/internal/compiler"
	"github.com/eugenenazirov/buildconf/internal/config"
	"github.com/eugenenazirov/buildconf/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes the stored build configuration over HTTP.
type Handler struct {
	store storage.Store

	clock    func() time.Time
	loadedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler reading from store.
func NewHandler(store storage.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		store: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.loadedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	cfg, err := h.store.Configuration()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := configResponse{
		BuildConfiguration: cfg,
		LoadedAt:           h.loadedAt,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCompiler(w http.ResponseWriter, r *http.Request) {
	_ = r
	cfg, err := h.store.Configuration()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	version, err := compiler.ParseVersion(cfg.CompilerVersion)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := compilerResponse{
		Version:   cfg.CompilerVersion,
		Major:     version.Major,
		Minor:     version.Minor,
		Patch:     version.Patch,
		Supported: compiler.Supported(version),
		Latest:    compiler.Latest().String(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListNetworks(w http.ResponseWriter, r *http.Request) {
	_ = r
	names, err := h.store.NetworkNames()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, networksResponse{Networks: names})
}

func (h *Handler) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	network, err := h.store.Network(name)
	if err != nil {
		if errors.Is(err, storage.ErrNetworkNotFound) {
			writeError(w, http.StatusNotFound, "Network not found", "no network named "+name+" is configured")
			return
		}
		writeInternalError(w, err)
		return
	}

	resp := networkResponse{
		Name:      name,
		URL:       network.URL,
		ChainID:   network.ChainID,
		TimeoutMs: network.Timeout.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type configResponse struct {
	config.BuildConfiguration
	LoadedAt time.Time `json:"loadedAt"`
}

type compilerResponse struct {
	Version   string `json:"version"`
	Major     int    `json:"major"`
	Minor     int    `json:"minor"`
	Patch     int    `json:"patch"`
	Supported bool   `json:"supported"`
	Latest    string `json:"latest"`
}

type networksResponse struct {
	Networks []string `json:"networks"`
}

type networkResponse struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	ChainID   int64  `json:"chainId"`
	TimeoutMs int64  `json:"timeout,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
