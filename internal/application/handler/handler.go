package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordermate/backend/internal/application/service"
	"github.com/ordermate/backend/internal/config"
	"github.com/ordermate/backend/internal/identity"
	"github.com/ordermate/backend/internal/order"
	"github.com/ordermate/backend/internal/pkg/retry"
)

//go:generate mockgen -source internal/application/handler/handler.go -destination=internal/application/handler/handler_mock_test.go -package=handler

var (
	ErrBadJSON     = errors.New("bad json")
	ErrProcess     = errors.New("order processing failed")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// OrderEvent is the wire shape of one intake message. The store identifier
// arrives in whatever shape the producing client uses (number, digit string
// or place id); items carry the legacy key spellings the composer accepts.
type OrderEvent struct {
	StoreIdentifier  any             `json:"store_identifier" validate:"required"`
	StoreName        string          `json:"store_name"`
	DisplayStoreName string          `json:"display_store_name"`
	Items            []order.RawItem `json:"items" validate:"required,min=1"`
	Total            decimal.Decimal `json:"total"`
	TargetLanguage   string          `json:"target_language"`
}

type Service interface {
	Process(ctx context.Context, req service.OrderRequest) (service.Result, error)
}

type brk interface {
	Allow() error
	Success()
	Failure()
}

type Handler struct {
	service     Service
	breaker     brk
	logger      *zap.Logger
	validate    *validator.Validate
	retryPolicy config.Retry
}

func NewHandler(service Service, breaker brk, retryPolicy config.Retry, logger *zap.Logger) *Handler {
	return &Handler{
		service:     service,
		breaker:     breaker,
		logger:      logger,
		validate:    validator.New(),
		retryPolicy: retryPolicy,
	}
}

// Handle — called by the consumer to process a single message.
// The consumer commits the offset itself after successfully returning nil.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	if err := h.breaker.Allow(); err != nil {
		h.logger.Warn("circuit breaker is open",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	var event OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.logger.Error("bad json format",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}
	if err := h.validate.Struct(event); err != nil {
		h.logger.Error("order event failed validation",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}

	id, err := identity.ParseIdentifier(event.StoreIdentifier)
	if err != nil {
		h.logger.Error("unusable store identifier",
			zap.Any("store_identifier", event.StoreIdentifier),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}

	req := service.OrderRequest{
		StoreIdentifier:  id,
		StoreName:        event.StoreName,
		DisplayStoreName: event.DisplayStoreName,
		Items:            event.Items,
		Total:            event.Total,
		TargetLang:       event.TargetLanguage,
	}

	var res service.Result
	if err := retry.Do(ctx, h.retryPolicy, func() error {
		res, err = h.service.Process(ctx, req)
		return err
	}); err != nil {
		h.logger.Error("order processing failed after retries",
			zap.String("identifier", id.String()),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrProcess
	}

	h.breaker.Success()
	h.logger.Info("successfully processed order",
		zap.Int64("store_id", res.StoreID),
		zap.String("message_id", res.Message.MessageID),
		zap.Int("partition", message.Partition),
		zap.Int64("offset", message.Offset),
		zap.Int("value_bytes", len(message.Value)),
	)
	return nil
}
