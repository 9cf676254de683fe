package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/pluscodes/internal/core/domain"
	"github.com/samirrijal/pluscodes/internal/pkg/metrics"
	"github.com/samirrijal/pluscodes/olc"
)

// wsRequest is one codec call from a client. Fields not used by the
// operation are ignored.
type wsRequest struct {
	ID     string  `json:"id,omitempty"`
	Op     string  `json:"op"` // encode | decode | shorten | recover | validate
	Code   string  `json:"code,omitempty"`
	Lat    float64 `json:"lat,omitempty"`
	Lng    float64 `json:"lng,omitempty"`
	Length int     `json:"length,omitempty"`
}

// wsReply answers exactly one wsRequest, echoing its ID.
type wsReply struct {
	ID    string    `json:"id,omitempty"`
	Op    string    `json:"op"`
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

// WebSocketHandler returns a handler that answers streamed codec requests.
// Clients send JSON such as {"id":"1","op":"encode","lat":47.3656,"lng":8.525}
// and receive one reply per request, in order.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		log := slog.Default().With("remote", remoteAddr)
		if rid, ok := c.Locals("requestid").(string); ok {
			log = log.With("request_id", rid)
		}
		log.Info("ws client connected")

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				_ = writeJSON(wsReply{Error: &APIError{Status: 400, Code: "bad_request", Message: "invalid JSON"}})
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			reply := handleWSRequest(ctx, deps, req)
			cancel()

			if err := writeJSON(reply); err != nil {
				log.Warn("ws write failed", "error", err)
				break
			}
		}

		close(done)
		log.Info("ws client disconnected")
	}
}

func handleWSRequest(ctx context.Context, deps *Dependencies, req wsRequest) wsReply {
	reply := wsReply{ID: req.ID, Op: req.Op}

	var (
		data any
		err  error
	)
	switch req.Op {
	case "encode":
		data, err = deps.Codes.Encode(ctx, domain.EncodeRequest{Lat: req.Lat, Lng: req.Lng, Length: req.Length})
	case "decode":
		data, err = deps.Codes.Decode(ctx, req.Code)
	case "shorten":
		data, err = deps.Codes.Shorten(ctx, req.Code, req.Lat, req.Lng)
	case "recover":
		data, err = deps.Codes.Recover(ctx, req.Code, req.Lat, req.Lng)
	case "validate":
		data = deps.Codes.Validate(ctx, req.Code)
	default:
		reply.Error = &APIError{Status: 400, Code: "bad_request", Message: "unknown op: " + req.Op}
		return reply
	}

	if err != nil {
		reply.Error = wsError(err)
		return reply
	}
	reply.Data = data
	return reply
}

func wsError(err error) *APIError {
	switch {
	case errors.Is(err, olc.ErrInvalidCode):
		return &APIError{Status: 400, Code: "invalid_code", Message: err.Error()}
	case errors.Is(err, olc.ErrInvalidArgument):
		return &APIError{Status: 400, Code: "bad_request", Message: err.Error()}
	default:
		return &APIError{Status: 500, Code: "internal_error", Message: "internal error"}
	}
}
