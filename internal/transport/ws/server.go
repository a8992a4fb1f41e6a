package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dungeonforge.gg/internal/game/world"
	"dungeonforge.gg/internal/protocol"
)

// Server is the session gateway: it binds one WebSocket connection to one
// player for the connection's lifetime and shuttles typed commands/events.
type Server struct {
	world      *world.World
	log        *log.Logger
	sendBuffer int

	upgrader websocket.Upgrader
}

func NewServer(w *world.World, sendBuffer int, logger *log.Logger) *Server {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	s := &Server{
		world:      w,
		log:        logger,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, out := s.handshake(conn)
		if sessionID == "" {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			cmd, err := protocol.DecodeCommand(msg)
			if err != nil {
				s.log.Printf("session %s: dropping malformed frame: %v", sessionID, err)
				continue
			}
			if _, isJoin := cmd.(*protocol.JoinCmd); isJoin {
				// Join only happens in the handshake; repeats are dropped.
				continue
			}
			s.world.Inbox() <- world.CommandEnvelope{SessionID: sessionID, Cmd: cmd}
		}

		// Cleanup. Leave is idempotent on the world side.
		s.world.Leave() <- sessionID
	}
}

// handshake expects a join command as the first frame, registers the player
// and sends the welcome payload.
func (s *Server) handshake(conn *websocket.Conn) (sessionID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}
	_ = conn.SetReadDeadline(time.Time{})

	cmd, err := protocol.DecodeCommand(msg)
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected join"),
			time.Now().Add(time.Second))
		return "", nil
	}
	joinCmd, ok := cmd.(*protocol.JoinCmd)
	if !ok {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected join"),
			time.Now().Add(time.Second))
		return "", nil
	}

	sessionID = uuid.NewString()
	out = make(chan []byte, s.sendBuffer)

	respCh := make(chan world.JoinResponse, 1)
	s.world.Join() <- world.JoinRequest{
		SessionID:     sessionID,
		Name:          joinCmd.Name,
		WalletAddress: joinCmd.WalletAddress,
		Out:           out,
		Resp:          respCh,
	}
	resp := <-respCh

	if err := writeJSON(conn, resp.Welcome); err != nil {
		s.world.Leave() <- sessionID
		return "", nil
	}
	return sessionID, out
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
