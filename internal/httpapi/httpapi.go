package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordermate/backend/internal/application/service"
	"github.com/ordermate/backend/internal/domain"
	"github.com/ordermate/backend/internal/identity"
	"github.com/ordermate/backend/internal/observability"
	"github.com/ordermate/backend/internal/order"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type ServerWithStats interface {
	Resolve(ctx context.Context, id identity.Identifier, displayName string) (int64, identity.ResolveStats, error)
	Summarize(ctx context.Context, req service.OrderRequest) (service.Result, service.ProcessStats, error)
	GetStore(ctx context.Context, storeID int64) (*domain.Store, error)
}

type Server struct {
	service  ServerWithStats
	router   chi.Router
	logger   *zap.Logger
	metrics  observability.Metrics
	validate *validator.Validate
}

// New builds the router. metricsHandler serves GET /metrics (promhttp in
// production, nil to disable).
func New(svc ServerWithStats, metricsHandler http.Handler, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		service:  svc,
		logger:   logger,
		metrics:  metrics,
		validate: validator.New(),
	}
	s.routes(metricsHandler)
	return s
}

func (s *Server) routes(metricsHandler http.Handler) {
	r := chi.NewRouter()
	r.Use(ServerTimingApp(s.metrics))

	r.Post("/store/resolve", s.resolveStore)
	r.Post("/order/summary", s.orderSummary)
	r.Get("/store/{store_id}", s.getStore)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	s.router = r
}

type resolveRequest struct {
	Identifier  any    `json:"identifier" validate:"required"`
	DisplayName string `json:"display_name"`
}

type resolveResponse struct {
	StoreID int64  `json:"store_id"`
	Source  string `json:"source"`
}

func (s *Server) resolveStore(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	id, err := identity.ParseIdentifier(req.Identifier)
	if err != nil {
		http.Error(w, "invalid store identifier", http.StatusBadRequest)
		return
	}

	storeID, st, err := s.service.Resolve(r.Context(), id, req.DisplayName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	observability.AppendServerTiming(w, "cache", st.CacheMs, "")
	observability.AppendServerTiming(w, "db", st.DBMs, "")
	observability.AppendServerTiming(w, "source", 0, string(st.Source))
	w.Header().Set("X-Source", string(st.Source))
	observability.SetIfPos(w, "X-Cache-Time", st.CacheMs)
	observability.SetIfPos(w, "X-DB-Time", st.DBMs)

	writeJSON(w, resolveResponse{StoreID: storeID, Source: string(st.Source)})
}

type summaryRequest struct {
	StoreIdentifier  any             `json:"store_identifier" validate:"required"`
	StoreName        string          `json:"store_name"`
	DisplayStoreName string          `json:"display_store_name"`
	Items            []order.RawItem `json:"items" validate:"required,min=1"`
	Total            decimal.Decimal `json:"total"`
	TargetLanguage   string          `json:"target_language"`
}

type summaryResponse struct {
	StoreID       int64  `json:"store_id"`
	NativeSummary string `json:"native_summary"`
	UserSummary   string `json:"user_summary"`
	VoiceScript   string `json:"voice_script"`
	TotalAmount   string `json:"total_amount"`
	TargetLang    string `json:"target_lang"`
}

func (s *Server) orderSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	id, err := identity.ParseIdentifier(req.StoreIdentifier)
	if err != nil {
		http.Error(w, "invalid store identifier", http.StatusBadRequest)
		return
	}

	res, st, err := s.service.Summarize(r.Context(), service.OrderRequest{
		StoreIdentifier:  id,
		StoreName:        req.StoreName,
		DisplayStoreName: req.DisplayStoreName,
		Items:            req.Items,
		Total:            req.Total,
		TargetLang:       req.TargetLanguage,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	observability.AppendServerTiming(w, "resolve", st.Resolve.CacheMs+st.Resolve.DBMs, "")
	observability.AppendServerTiming(w, "compose", st.Summary.ComposeMs, "")
	observability.AppendServerTiming(w, "build", st.Summary.BuildMs, "")
	w.Header().Set("X-Source", string(st.Resolve.Source))

	writeJSON(w, summaryResponse{
		StoreID:       res.StoreID,
		NativeSummary: res.Summary.NativeSummary,
		UserSummary:   res.Summary.UserSummary,
		VoiceScript:   res.Summary.VoiceScript,
		TotalAmount:   res.Summary.TotalAmount,
		TargetLang:    res.Summary.TargetLang,
	})
}

func (s *Server) getStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		http.Error(w, "store id must be a positive integer", http.StatusBadRequest)
		return
	}

	store, err := s.service.GetStore(r.Context(), storeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, store)
}

// decodeJSON enforces the json content type, decodes strictly and runs the
// struct validation. It writes the error response itself.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		s.logger.Error(
			"Error while decoding JSON",
			zap.Error(err),
		)
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps domain errors to statuses without leaking storage detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidIdentifier):
		http.Error(w, "invalid store identifier", http.StatusBadRequest)
	case errors.Is(err, domain.ErrNoItemName):
		http.Error(w, "order item without a name", http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "no store with this id", http.StatusNotFound)
	default:
		http.Error(w, "service error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
