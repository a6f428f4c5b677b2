package live

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

const (
	MessagePing  = "ping"
	MessageClose = "close"
)

// Server accepts page connections. Every inbound message is logged; "ping"
// refreshes the client's last-seen time and "close" ends its session.
type Server struct {
	registry *Registry
	onLeave  func()
	logger   logger.Logger
}

// NewServer builds the handler. onLeave, if set, runs in its own goroutine
// after each client disconnects.
func NewServer(registry *Registry, onLeave func(), log logger.Logger) *Server {
	return &Server{
		registry: registry,
		onLeave:  onLeave,
		logger:   log.WithComponent("Live"),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The page is served from the app port, so the origin never matches.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("Failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow()

	id := s.registry.Join()
	s.logger.Info("Client connected", "client", id.String(), "remote", r.RemoteAddr)
	defer func() {
		s.registry.Leave(id)
		if s.onLeave != nil {
			go s.onLeave()
		}
	}()

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			s.logDisconnect(id.String(), err)
			return
		}

		msg := string(data)
		s.logger.Debug("Message received", "client", id.String(), "message", msg)

		switch msg {
		case MessagePing:
			s.registry.Touch(id)
		case MessageClose:
			s.logger.Info("Client sent close", "client", id.String())
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}

func (s *Server) logDisconnect(id string, err error) {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		s.logger.Info("Client disconnected", "client", id)
		return
	}
	s.logger.Warn("Client connection lost", "client", id, "error", err)
}
