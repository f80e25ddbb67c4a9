package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/heartmarshall/eventfeed-backend/internal/domain"
	"github.com/heartmarshall/eventfeed-backend/internal/service/ingest"
	"github.com/heartmarshall/eventfeed-backend/pkg/ctxutil"
)

// recorder appends one event to the store.
type recorder interface {
	Record(ctx context.Context, input ingest.RecordInput) error
}

// groupHandler implements sarama.ConsumerGroupHandler.
type groupHandler struct {
	log *slog.Logger
	rec recorder
}

func (h *groupHandler) Setup(sess sarama.ConsumerGroupSession) error {
	h.log.Info("kafka session started",
		slog.String("member_id", sess.MemberID()),
		slog.Int("generation", int(sess.GenerationID())),
	)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim handles messages in partition order. A message is marked
// once it is stored or known to be unusable; an infrastructure failure ends
// the session without marking so the message is delivered again.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.handle(sess.Context(), msg); err != nil {
				return err
			}
			sess.MarkMessage(msg, "")
		case <-sess.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	log := h.log.With(
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("topic", msg.Topic),
		slog.Int("partition", int(msg.Partition)),
		slog.Int64("offset", msg.Offset),
	)

	var m eventMessage
	if err := json.Unmarshal(msg.Value, &m); err != nil {
		log.WarnContext(ctx, "malformed event message skipped", slog.String("error", err.Error()))
		return nil
	}

	if err := h.rec.Record(ctx, m.toInput()); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			log.WarnContext(ctx, "invalid event skipped",
				slog.String("event_id", m.ID.String()),
				slog.String("error", err.Error()),
			)
			return nil
		}
		log.ErrorContext(ctx, "record event failed", slog.String("error", err.Error()))
		return fmt.Errorf("record event at offset %d: %w", msg.Offset, err)
	}
	return nil
}
