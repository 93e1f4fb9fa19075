// Package notify holds the ports to the downstream messaging and
// voice-synthesis collaborators and the dispatcher that feeds them.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordermate/backend/internal/domain"
	"github.com/ordermate/backend/internal/observability"
)

//go:generate mockgen -source internal/notify/notify.go -destination=internal/notify/notify_mock_test.go -package=notify

// Messenger delivers an order notification to the customer-facing channel.
// Implementations live outside this service.
type Messenger interface {
	Send(ctx context.Context, msg Message) error
}

// Synthesizer turns the operator-language voice script into an audio
// resource reference. Implementations live outside this service.
type Synthesizer interface {
	Synthesize(ctx context.Context, script, langTag string) (string, error)
}

type Message struct {
	MessageID     string `json:"message_id"`
	StoreID       int64  `json:"store_id"`
	NativeSummary string `json:"native_summary"`
	UserSummary   string `json:"user_summary"`
	TotalAmount   string `json:"total_amount"`
	AudioRef      string `json:"audio_ref,omitempty"`
}

// Dispatcher assembles and sends the final notification. It enforces the
// collaborator contract: a message with both summaries empty is never
// dispatched. A failed synthesis downgrades to a text-only message; a
// failed send is the caller's error.
type Dispatcher struct {
	messenger    Messenger
	synth        Synthesizer
	logger       *zap.Logger
	metrics      observability.Metrics
	operatorLang string
}

func NewDispatcher(messenger Messenger, synth Synthesizer, operatorLang string, logger *zap.Logger, metrics observability.Metrics) *Dispatcher {
	return &Dispatcher{
		messenger:    messenger,
		synth:        synth,
		logger:       logger,
		metrics:      metrics,
		operatorLang: operatorLang,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, storeID int64, s domain.OrderSummary) (Message, error) {
	if s.NativeSummary == "" && s.UserSummary == "" {
		return Message{}, domain.ErrMissingSummaryContent
	}

	start := time.Now()
	msg := Message{
		MessageID:     uuid.NewString(),
		StoreID:       storeID,
		NativeSummary: s.NativeSummary,
		UserSummary:   s.UserSummary,
		TotalAmount:   s.TotalAmount,
	}

	if d.synth != nil && s.VoiceScript != "" {
		ref, err := d.synth.Synthesize(ctx, s.VoiceScript, d.operatorLang)
		if err != nil {
			d.logger.Warn("voice synthesis failed, sending text-only",
				zap.Int64("store_id", storeID),
				zap.Error(err),
			)
		} else {
			msg.AudioRef = ref
		}
	}

	if err := d.messenger.Send(ctx, msg); err != nil {
		d.metrics.ObserveDispatch(sinceMs(start), false)
		return Message{}, err
	}
	d.metrics.ObserveDispatch(sinceMs(start), true)

	d.logger.Info("order notification dispatched",
		zap.String("message_id", msg.MessageID),
		zap.Int64("store_id", storeID),
		zap.Bool("with_audio", msg.AudioRef != ""),
	)
	return msg, nil
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}

// LogMessenger is the default wiring when no real channel is configured:
// it only logs the outbound message.
type LogMessenger struct {
	Logger *zap.Logger
}

func (l LogMessenger) Send(_ context.Context, msg Message) error {
	l.Logger.Info("outbound order notification",
		zap.String("message_id", msg.MessageID),
		zap.Int64("store_id", msg.StoreID),
		zap.String("total", msg.TotalAmount),
	)
	return nil
}

// NoopSynthesizer produces no audio; messages go out text-only.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Synthesize(context.Context, string, string) (string, error) {
	return "", nil
}
