package natsadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/pluscodes/internal/core/domain"
	"github.com/samirrijal/pluscodes/internal/core/usecases"
	"github.com/samirrijal/pluscodes/internal/pkg/metrics"
	"github.com/samirrijal/pluscodes/olc"
)

// Responder answers codec requests on olc.* subjects. Instances sharing a
// queue group split the load.
type Responder struct {
	conn    *nats.Conn
	codes   *usecases.CodeService
	queue   string
	timeout time.Duration
	subs    []*nats.Subscription
}

// NewResponder creates a responder on an existing connection.
func NewResponder(conn *nats.Conn, codes *usecases.CodeService, queue string) *Responder {
	return &Responder{conn: conn, codes: codes, queue: queue, timeout: 5 * time.Second}
}

// Start subscribes to every codec subject.
func (r *Responder) Start(ctx context.Context) error {
	sub, err := r.conn.QueueSubscribe(SubjectPrefix+"*", r.queue, func(msg *nats.Msg) {
		reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		reply := r.Handle(reqCtx, msg.Subject, msg.Data)
		if msg.Reply == "" {
			return
		}
		if err := msg.Respond(reply); err != nil {
			slog.Warn("nats respond failed", "subject", msg.Subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s*: %w", SubjectPrefix, err)
	}
	r.subs = append(r.subs, sub)
	slog.Info("nats responder subscribed", "subject", SubjectPrefix+"*", "queue", r.queue)
	return nil
}

// Handle dispatches one request and returns the encoded Reply.
func (r *Responder) Handle(ctx context.Context, subject string, data []byte) []byte {
	result, err := r.dispatch(ctx, subject, data)

	var reply Reply
	if err != nil {
		reply.Error = toReplyError(err)
		metrics.NATSRequests.WithLabelValues(subject, "error").Inc()
	} else {
		raw, mErr := json.Marshal(result)
		if mErr != nil {
			reply.Error = &ReplyError{Code: "internal_error", Message: mErr.Error()}
		} else {
			reply.Data = raw
		}
		metrics.NATSRequests.WithLabelValues(subject, "ok").Inc()
	}

	out, _ := json.Marshal(reply)
	return out
}

func (r *Responder) dispatch(ctx context.Context, subject string, data []byte) (any, error) {
	switch subject {
	case SubjectEncode:
		var req domain.EncodeRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, errBadPayload(err)
		}
		return r.codes.Encode(ctx, req)
	case SubjectDecode, SubjectShorten, SubjectRecover, SubjectValidate:
		var req CodeRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, errBadPayload(err)
		}
		switch subject {
		case SubjectDecode:
			return r.codes.Decode(ctx, req.Code)
		case SubjectShorten:
			return r.codes.Shorten(ctx, req.Code, req.Lat, req.Lng)
		case SubjectRecover:
			return r.codes.Recover(ctx, req.Code, req.Lat, req.Lng)
		default:
			return r.codes.Validate(ctx, req.Code), nil
		}
	default:
		return nil, &ReplyError{Code: "not_found", Message: "unknown subject " + subject}
	}
}

func errBadPayload(err error) error {
	return &ReplyError{Code: "bad_request", Message: "invalid JSON payload: " + err.Error()}
}

func toReplyError(err error) *ReplyError {
	var re *ReplyError
	switch {
	case errors.As(err, &re):
		return re
	case errors.Is(err, olc.ErrInvalidCode):
		return &ReplyError{Code: "invalid_code", Message: err.Error()}
	case errors.Is(err, olc.ErrInvalidArgument),
		errors.Is(err, usecases.ErrBatchTooLarge),
		errors.Is(err, usecases.ErrEmptyBatch):
		return &ReplyError{Code: "bad_request", Message: err.Error()}
	default:
		return &ReplyError{Code: "internal_error", Message: err.Error()}
	}
}

// Close unsubscribes and drains.
func (r *Responder) Close() {
	for _, sub := range r.subs {
		_ = sub.Unsubscribe()
	}
	_ = r.conn.Drain()
}
