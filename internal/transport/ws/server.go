// Package ws bridges the game to a renderer over a websocket: draw
// commands stream out, input events stream in.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"frontier.sim/internal/artist"
	"frontier.sim/internal/protocol"
)

// Server accepts one renderer client at a time; a new connection replaces
// the previous one.
type Server struct {
	params protocol.WorldParams
	events chan<- protocol.InputEvent
	log    *log.Logger

	upgrader websocket.Upgrader

	mu  sync.Mutex
	out chan []byte
}

func NewServer(params protocol.WorldParams, events chan<- protocol.InputEvent, logger *log.Logger) *Server {
	return &Server{
		params: params,
		events: events,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// SendDraw queues a draw batch for the connected renderer. Batches are
// dropped when no renderer is connected or its queue is full; the next
// full redraw repairs the picture.
func (s *Server) SendDraw(micros int64, commands []artist.Command) {
	if len(commands) == 0 {
		return
	}
	raw, err := json.Marshal(protocol.DrawMsg{
		Type:            protocol.TypeDraw,
		ProtocolVersion: protocol.Version,
		Micros:          micros,
		Commands:        commands,
	})
	if err != nil {
		s.log.Error("marshal draw batch", "error", err)
		return
	}
	s.mu.Lock()
	out := s.out
	s.mu.Unlock()
	if out == nil {
		return
	}
	select {
	case out <- raw:
	default:
		s.log.Warn("renderer queue full, dropping draw batch", "commands", len(commands))
	}
}

func (s *Server) attach(out chan []byte) {
	s.mu.Lock()
	previous := s.out
	s.out = out
	s.mu.Unlock()
	if previous != nil {
		close(previous)
	}
}

// detach reports whether the caller still owned the active channel; the
// owner is responsible for closing it. A replaced connection's channel was
// already closed by attach.
func (s *Server) detach(out chan []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out == out {
		s.out = nil
		return true
	}
	return false
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, ok := s.handshake(conn)
		if !ok {
			return
		}
		s.log.Info("renderer connected", "session", sessionID)

		out := make(chan []byte, 64)
		s.attach(out)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for raw := range out {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
					return
				}
			}
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeEvent {
				continue
			}
			var event protocol.EventMsg
			if err := json.Unmarshal(msg, &event); err != nil {
				continue
			}
			if event.ProtocolVersion != protocol.Version {
				continue
			}
			s.events <- event.Event
		}

		if s.detach(out) {
			close(out)
		}
		<-done
		s.log.Info("renderer disconnected", "session", sessionID)
	}
}

func (s *Server) handshake(conn *websocket.Conn) (string, bool) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", false
	}
	_ = conn.SetReadDeadline(time.Time{})

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		s.closePolicy(conn, "expected HELLO")
		return "", false
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", false
	}
	if hello.ProtocolVersion != protocol.Version {
		s.closePolicy(conn, "bad protocol_version")
		return "", false
	}

	sessionID := uuid.NewString()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		WorldParams:     s.params,
	}
	raw, err := json.Marshal(welcome)
	if err != nil {
		return "", false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		return "", false
	}
	return sessionID, true
}

func (s *Server) closePolicy(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		time.Now().Add(time.Second),
	)
}
