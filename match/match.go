package match

import (
	"log"
	"sync"
	"time"

	"github.com/benpastel/qwopper-bopper/game"
	"github.com/benpastel/qwopper-bopper/protocol"
)

// Conn is the outbound half of one player's message channel, as handed
// to us by the transport layer.
type Conn interface {
	Send([]byte) error
	Close() error
}

// InputSource is the inbound half: it blocks for the player's next
// decoded input event.
type InputSource interface {
	NextInput() (protocol.Input, error)
}

// Keydown is posted by an input listener; the loop coalesces these
// last-wins into the match state.
type Keydown struct {
	Player game.Player
	Key    string
}

// Leave is posted when a player's connection is gone; it ends the match.
type Leave struct {
	Player game.Player
}

// Match owns one game: the state, the two connections, and the
// fixed-tick loop goroutine that is the only writer of the state.
type Match struct {
	ID    string
	Inbox chan any

	state *game.State
	conns map[game.Player]Conn

	quit chan struct{}
	once sync.Once

	// OnEnd is called exactly once after the loop exits.
	OnEnd func(id string)
}

func New(id string, conns map[game.Player]Conn) *Match {
	state := game.NewState(time.Now().UnixNano())
	state.SpawnFighters()
	return &Match{
		ID:    id,
		Inbox: make(chan any, 256),
		state: state,
		conns: conns,
		quit:  make(chan struct{}),
	}
}

// Start spawns the input listeners and the match loop.
func (m *Match) Start(sources map[game.Player]InputSource) {
	for p, src := range sources {
		go m.listenInputs(p, src)
	}
	go m.Run()
}

// Stop signals the loop to end the match. Safe to call more than once.
func (m *Match) Stop() {
	m.once.Do(func() { close(m.quit) })
}

// Run is the fixed-tick driver. Each deadline is computed from the
// previous scheduled deadline rather than from the clock after
// sleeping, so a slow tick does not shift every later tick.
func (m *Match) Run() {
	period := time.Second / game.SimTickHz
	next := time.Now().Add(period)

	for {
		select {
		case <-m.quit:
			m.shutdown()
			return
		case cmd := <-m.Inbox:
			m.handle(cmd)
		case <-time.After(time.Until(next)):
			next = nextDeadline(next, period, time.Now())
			game.Step(m.state)
			m.broadcast()
		}
	}
}

// nextDeadline advances the schedule by one period. If the loop has
// fallen more than a full period behind, the schedule rebases on the
// current time so accumulated lag is not replayed as a burst of ticks.
func nextDeadline(prev time.Time, period time.Duration, now time.Time) time.Time {
	next := prev.Add(period)
	if now.Sub(next) > period {
		return now.Add(period)
	}
	return next
}

func (m *Match) handle(cmd any) {
	switch c := cmd.(type) {
	case Keydown:
		m.state.SetKeydown(c.Player, c.Key)
	case Leave:
		log.Printf("match %s: %s left, ending match", m.ID, c.Player)
		m.Stop()
	default:
		log.Printf("match %s: dropping unknown command %T", m.ID, cmd)
	}
}

// listenInputs forwards one player's keypresses into the inbox until
// the source fails or the match stops. A read failure ends the match
// through the Leave path; during shutdown it is the expected way out
// and stays quiet.
func (m *Match) listenInputs(p game.Player, src InputSource) {
	for {
		in, err := src.NextInput()
		if err != nil {
			select {
			case <-m.quit:
			default:
				log.Printf("match %s: %s input listener: %v", m.ID, p, err)
				select {
				case m.Inbox <- Leave{Player: p}:
				case <-m.quit:
				}
			}
			return
		}
		if in.Keydown == "" {
			continue
		}
		select {
		case m.Inbox <- Keydown{Player: p, Key: in.Keydown}:
		case <-m.quit:
			return
		}
	}
}

// broadcast drains the tick's hits and sends the same snapshot to both
// players concurrently, joining before the next tick. One player's
// failed send still lets the other receive the snapshot; it then ends
// the match.
func (m *Match) broadcast() {
	snapshot := m.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		log.Printf("match %s: encode snapshot: %v", m.ID, err)
		return
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []game.Player
	)
	for p, c := range m.conns {
		wg.Add(1)
		go func(p game.Player, c Conn) {
			defer wg.Done()
			if err := c.Send(b); err != nil {
				mu.Lock()
				failed = append(failed, p)
				mu.Unlock()
			}
		}(p, c)
	}
	wg.Wait()

	for _, p := range failed {
		log.Printf("match %s: send to %s failed, ending match", m.ID, p)
		m.Stop()
	}
}

func (m *Match) buildSnapshot() protocol.State {
	snapshot := protocol.State{
		Positions: make(map[string]map[string]protocol.Position, len(game.Players)),
		Hits:      make(map[string][]protocol.Point, len(game.Players)),
		Scores:    make(map[string]int, len(game.Players)),
	}

	hits := m.state.TakeHits()
	for _, p := range game.Players {
		fighter := m.state.Fighters[p]
		segments := make(map[string]protocol.Position, 8)
		for name, body := range fighter.Segments() {
			pos := body.Position()
			segments[name] = protocol.Position{X: pos.X, Y: pos.Y, Angle: body.Angle()}
		}
		snapshot.Positions[string(p)] = segments

		points := make([]protocol.Point, 0, len(hits[p]))
		for _, v := range hits[p] {
			points = append(points, protocol.Point{X: v.X, Y: v.Y})
		}
		snapshot.Hits[string(p)] = points
		snapshot.Scores[string(p)] = m.state.Scores[p]
	}
	return snapshot
}

// shutdown sends a best-effort game over, closes both connections (which
// also unblocks the input listeners), and reports the end.
func (m *Match) shutdown() {
	scores := make(map[string]int, len(game.Players))
	for _, p := range game.Players {
		scores[string(p)] = m.state.Scores[p]
	}
	if b, err := protocol.Encode(protocol.MsgGameOver, protocol.GameOver{Scores: scores}); err == nil {
		for _, c := range m.conns {
			_ = c.Send(b)
		}
	}
	for _, c := range m.conns {
		_ = c.Close()
	}
	if m.OnEnd != nil {
		m.OnEnd(m.ID)
	}
}
