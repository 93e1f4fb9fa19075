package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordermate/backend/internal/domain"
	"github.com/ordermate/backend/internal/identity"
	"github.com/ordermate/backend/internal/notify"
	"github.com/ordermate/backend/internal/observability"
	"github.com/ordermate/backend/internal/order"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

type Resolver interface {
	ResolveWithStats(ctx context.Context, id identity.Identifier, displayName string) (int64, identity.ResolveStats, error)
}

type Storage interface {
	GetByID(ctx context.Context, storeID int64) (*domain.Store, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, storeID int64, s domain.OrderSummary) (notify.Message, error)
}

// OrderRequest is one order pass through the pipeline: identify the store,
// normalize the items, render the summaries.
type OrderRequest struct {
	StoreIdentifier  identity.Identifier
	StoreName        string
	DisplayStoreName string
	Items            []order.RawItem
	Total            decimal.Decimal
	TargetLang       string
}

type Result struct {
	StoreID int64
	Summary domain.OrderSummary
	Message notify.Message
}

type Service struct {
	resolver   Resolver
	storage    Storage
	builder    *order.Builder
	dispatcher Dispatcher
	logger     *zap.Logger
	metrics    observability.Metrics
}

func NewService(resolver Resolver, storage Storage, builder *order.Builder, dispatcher Dispatcher, logger *zap.Logger, metrics observability.Metrics) *Service {
	return &Service{
		resolver:   resolver,
		storage:    storage,
		builder:    builder,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *Service) Resolve(ctx context.Context, id identity.Identifier, displayName string) (int64, identity.ResolveStats, error) {
	return s.resolver.ResolveWithStats(ctx, id, displayName)
}

func (s *Service) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	store, err := s.storage.GetByID(ctx, storeID)
	if err != nil {
		s.logger.Error(
			"Can't find store",
			zap.Int64("store_id", storeID),
			zap.Error(err),
		)
		return nil, err
	}
	return store, nil
}

// Summarize resolves the store and renders the order without dispatching.
// It backs the synchronous HTTP path.
func (s *Service) Summarize(ctx context.Context, req OrderRequest) (Result, ProcessStats, error) {
	var st ProcessStats

	storeID, rst, err := s.resolver.ResolveWithStats(ctx, req.StoreIdentifier, req.DisplayStoreName)
	st.Resolve = rst
	if err != nil {
		s.logger.Error(
			"Store resolution failed",
			zap.String("identifier", req.StoreIdentifier.String()),
			zap.Error(err),
		)
		return Result{}, st, err
	}

	tCompose := time.Now()
	items, err := order.ComposeAll(req.Items, req.TargetLang)
	if err != nil {
		s.logger.Error(
			"Order items rejected",
			zap.Int64("store_id", storeID),
			zap.Error(err),
		)
		return Result{}, st, err
	}
	st.Summary.ComposeMs = convertToMs(tCompose)

	tBuild := time.Now()
	summary := s.builder.Build(
		nativeStoreName(req),
		displayStoreName(req),
		items,
		req.Total,
		req.TargetLang,
	)
	st.Summary.BuildMs = convertToMs(tBuild)

	s.metrics.ObserveSummary(st.Summary.ComposeMs, st.Summary.BuildMs)
	s.logger.Info("Order summarized",
		zap.Int64("store_id", storeID),
		zap.Int("items", len(items)),
		zap.String("target_lang", req.TargetLang),
		zap.Float64("compose_ms", st.Summary.ComposeMs),
		zap.Float64("build_ms", st.Summary.BuildMs),
	)

	return Result{StoreID: storeID, Summary: summary}, st, nil
}

// Process is the full pipeline: Summarize, then hand the renderings to the
// notify dispatcher. It backs the kafka intake path.
func (s *Service) Process(ctx context.Context, req OrderRequest) (Result, error) {
	res, _, err := s.ProcessWithStats(ctx, req)
	return res, err
}

func (s *Service) ProcessWithStats(ctx context.Context, req OrderRequest) (Result, ProcessStats, error) {
	res, st, err := s.Summarize(ctx, req)
	if err != nil {
		return Result{}, st, err
	}

	tDispatch := time.Now()
	msg, err := s.dispatcher.Dispatch(ctx, res.StoreID, res.Summary)
	st.DispatchMs = convertToMs(tDispatch)
	if err != nil {
		s.logger.Error(
			"Order dispatch failed",
			zap.Int64("store_id", res.StoreID),
			zap.Error(err),
		)
		return Result{}, st, err
	}
	res.Message = msg

	return res, st, nil
}

func nativeStoreName(req OrderRequest) string {
	if req.StoreName != "" {
		return req.StoreName
	}
	return req.DisplayStoreName
}

func displayStoreName(req OrderRequest) string {
	if req.DisplayStoreName != "" {
		return req.DisplayStoreName
	}
	return req.StoreName
}
