package match

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/benpastel/qwopper-bopper/game"
)

type pending struct {
	conn Conn
	src  InputSource
}

// Manager pairs connections into matches: each connection claims a
// side, and the match starts the moment both sides are present.
type Manager struct {
	mu      sync.Mutex
	waiting map[game.Player]pending
	active  map[string]*Match
}

func NewManager() *Manager {
	return &Manager{
		waiting: make(map[game.Player]pending),
		active:  make(map[string]*Match),
	}
}

// Join claims a side for a connection. When the other side is already
// waiting, the match starts immediately.
func (mgr *Manager) Join(p game.Player, conn Conn, src InputSource) error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	if _, taken := mgr.waiting[p]; taken {
		return fmt.Errorf("player %s is already connected", p)
	}
	mgr.waiting[p] = pending{conn: conn, src: src}
	log.Printf("%s connected", p)

	if len(mgr.waiting) < len(game.Players) {
		return nil
	}

	conns := make(map[game.Player]Conn, len(mgr.waiting))
	sources := make(map[game.Player]InputSource, len(mgr.waiting))
	for player, w := range mgr.waiting {
		conns[player] = w.conn
		sources[player] = w.src
	}
	mgr.waiting = make(map[game.Player]pending)

	id := uuid.NewString()
	m := New(id, conns)
	m.OnEnd = func(id string) { mgr.remove(id) }
	mgr.active[id] = m

	log.Printf("match %s: starting", id)
	m.Start(sources)
	return nil
}

// Drop forgets a connection that disconnected while waiting for an
// opponent. A connection already in a match is handled by the match's
// own Leave path instead.
func (mgr *Manager) Drop(p game.Player, conn Conn) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	if w, ok := mgr.waiting[p]; ok && w.conn == conn {
		delete(mgr.waiting, p)
		log.Printf("%s disconnected while waiting", p)
	}
}

// StopAll ends every active match; used on server shutdown.
func (mgr *Manager) StopAll() {
	mgr.mu.Lock()
	matches := make([]*Match, 0, len(mgr.active))
	for _, m := range mgr.active {
		matches = append(matches, m)
	}
	mgr.mu.Unlock()

	for _, m := range matches {
		m.Stop()
	}
}

func (mgr *Manager) remove(id string) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	delete(mgr.active, id)
	log.Printf("match %s: ended", id)
}
