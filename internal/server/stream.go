package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"osirishq/internal/events"
	"osirishq/internal/game"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

const (
	streamWriteTimeout = 5 * time.Second
	// streamMinInterval caps how often one client is pushed a snapshot.
	streamMinInterval = 100 * time.Millisecond
)

// StreamMessage is the envelope sent to websocket clients.
type StreamMessage struct {
	Type   string         `json:"type"`
	Reason string         `json:"reason,omitempty"`
	State  *game.Snapshot `json:"state,omitempty"`
}

// Stream pushes a fresh snapshot to each connected client whenever the
// engine reports a state change.
type Stream struct {
	Engine         *game.Engine
	Bus            *events.Bus
	Logger         *slog.Logger
	OriginPatterns []string
}

func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.OriginPatterns,
	})
	if err != nil {
		s.Logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	id := uuid.NewString()
	logger := s.Logger.With("stream_id", id)
	logger.Info("stream connected")

	// Clients never send; CloseRead keeps control frames flowing and
	// cancels ctx when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	changed := make(chan string, 1)
	unsubscribe := s.Bus.Subscribe(events.EventStateChanged, func(ev events.Event) {
		reason, _ := ev.Data["reason"].(string)
		select {
		case changed <- reason:
		default:
		}
	})
	defer unsubscribe()

	if err := s.send(ctx, conn, "connected"); err != nil {
		logger.Debug("stream write failed", "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("stream closed")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case reason := <-changed:
			if err := s.send(ctx, conn, reason); err != nil {
				logger.Debug("stream write failed", "error", err)
				return
			}
			timer := time.NewTimer(streamMinInterval)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
	}
}

func (s *Stream) send(ctx context.Context, conn *websocket.Conn, reason string) error {
	snap, err := s.Engine.Snapshot(ctx)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(wctx, conn, StreamMessage{Type: "snapshot", Reason: reason, State: &snap})
}
