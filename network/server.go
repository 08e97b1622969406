package network

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/benpastel/qwopper-bopper/game"
	"github.com/benpastel/qwopper-bopper/match"
	"github.com/benpastel/qwopper-bopper/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server upgrades websocket connections and hands them to the match
// manager once they claim a side.
type Server struct {
	manager *match.Manager
}

func NewServer(manager *match.Manager) *Server {
	return &Server{manager: manager}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	client := NewClient(ws)
	defer client.Close()

	player, err := readJoin(ws)
	if err != nil {
		log.Println("join:", err)
		return
	}
	if err := s.manager.Join(player, client, client); err != nil {
		log.Println("join:", err)
		return
	}

	welcome, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		Player: string(player),
		TickHz: game.SimTickHz,
	})
	if err == nil {
		_ = client.Send(welcome)
	}

	// the match's input listener owns the read side from here; hold the
	// handler open until the connection dies
	<-client.Done()
	s.manager.Drop(player, client)
}

// readJoin consumes the handshake: the first message must claim a side.
func readJoin(ws *websocket.Conn) (game.Player, error) {
	_, b, err := ws.ReadMessage()
	if err != nil {
		return "", err
	}
	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		return "", err
	}
	if env.T != protocol.MsgJoin {
		return "", fmt.Errorf("expected %q message, got %q", protocol.MsgJoin, env.T)
	}
	join, err := protocol.DecodePayload[protocol.Join](env)
	if err != nil {
		return "", err
	}
	p := game.Player(join.Player)
	for _, known := range game.Players {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown player %q", join.Player)
}
