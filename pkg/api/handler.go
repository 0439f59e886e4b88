package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hazyhaar/normative-lexicon/pkg/check"
	"github.com/hazyhaar/normative-lexicon/pkg/index"
	"github.com/hazyhaar/normative-lexicon/pkg/kit"
)

// BuildFunc triggers a full corpus rebuild. It is supplied by the caller so
// the API layer stays ignorant of where documents come from.
type BuildFunc func(ctx context.Context) (index.Stats, error)

// Server bundles the dependencies of the HTTP and MCP transports.
type Server struct {
	Checker *check.Checker
	Manager *index.Manager
	Build   BuildFunc
	Logger  *slog.Logger

	// Client fetches pages for check-url. Defaults to a 30s-timeout client.
	Client *http.Client
}

// NewRouter returns an http.Handler with all lexicon API routes.
func NewRouter(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 30 * time.Second}
	}

	mux := http.NewServeMux()
	h := &handler{
		checkWord:  kit.Logging(s.Logger, "check_word")(checkWordEndpoint(s.Checker)),
		checkBatch: kit.Logging(s.Logger, "check_batch")(checkBatchEndpoint(s.Checker)),
		checkURL:   kit.Logging(s.Logger, "check_url")(checkURLEndpoint(s.Checker, s.Client)),
		status:     statusEndpoint(s.Manager),
		srv:        s,
	}

	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.HandleFunc("GET /v1/status", h.handleStatus)
	mux.HandleFunc("POST /v1/corpus/build", h.handleBuild)
	mux.HandleFunc("POST /v1/check", h.handleCheck)
	mux.HandleFunc("POST /v1/check-url", h.handleCheckURL)
	mux.HandleFunc("GET /v1/check", methodNotAllowed)
	mux.HandleFunc("GET /v1/check-url", methodNotAllowed)

	return cors(mux)
}

type handler struct {
	checkWord  kit.Endpoint
	checkBatch kit.Endpoint
	checkURL   kit.Endpoint
	status     kit.Endpoint
	srv        *Server
}

// --- check words ---

type httpCheckRequest struct {
	Word  string   `json:"word,omitempty"`
	Words []string `json:"words,omitempty"`
}

func (h *handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Single-word and batch forms share one route.
	if req.Word != "" && len(req.Words) == 0 {
		resp, err := h.checkWord(r.Context(), &checkWordReq{Word: req.Word})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := h.checkBatch(r.Context(), &checkBatchReq{Words: req.Words})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- check URL ---

type httpCheckURLRequest struct {
	URL string `json:"url"`
}

func (h *handler) handleCheckURL(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)
	var req httpCheckURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.checkURL(r.Context(), &checkURLReq{URL: req.URL})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- corpus build ---

func (h *handler) handleBuild(w http.ResponseWriter, r *http.Request) {
	if h.srv.Build == nil {
		writeError(w, http.StatusNotImplemented, "corpus build not configured")
		return
	}
	if h.srv.Manager.Building() {
		writeError(w, http.StatusConflict, "build already running")
		return
	}

	// The build outlives the request; report acceptance and run detached.
	go func() {
		stats, err := h.srv.Build(context.Background())
		if err != nil {
			if !errors.Is(err, index.ErrBuildRunning) {
				h.srv.Logger.Error("corpus build failed", "error", err)
			}
			return
		}
		h.srv.Logger.Info("corpus build finished",
			"files", stats.Files, "pages", stats.Pages, "tokens", stats.Tokens)
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "building"})
}

// --- status / health ---

type healthResponse struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
	Words  int    `json:"words"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Ready:  h.srv.Manager.Ready(),
		Words:  h.srv.Manager.Snapshot().Len(),
	})
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.status(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
