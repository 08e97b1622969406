package game

import (
	"math/rand"

	"github.com/jakecoffman/cp"
)

// Player identifies one of the two fixed sides of a match.
type Player string

const (
	Red  Player = "red"
	Blue Player = "blue"
)

// Players is the fixed iteration order for anything per-player.
var Players = []Player{Red, Blue}

func Other(p Player) Player {
	if p == Red {
		return Blue
	}
	return Red
}

// State is the authoritative per-match state. It is owned by the match
// loop goroutine: input listeners never touch it directly, they post
// commands into the match inbox and the loop writes here.
type State struct {
	Space    *cp.Space
	Fighters map[Player]*Fighter
	Scores   map[Player]int

	// EnforceArmLimits adds rotary limit joints to the arms when
	// SpawnFighters builds the rigs. The arm reference angles are
	// defined but unenforced by default. Set before SpawnFighters.
	EnforceArmLimits bool

	// player -> key pressed since the last tick consumed it, if any.
	// Written last-wins, drained once per tick by TakeKeydown.
	keydowns map[Player]string

	// striking player -> world points that dealt damage since the last
	// broadcast. Drained once per broadcast by TakeHits.
	hits map[Player][]cp.Vector

	rng *rand.Rand
}

func NewState(seed int64) *State {
	s := &State{
		Space:    newSpace(),
		Fighters: make(map[Player]*Fighter, len(Players)),
		Scores:   make(map[Player]int, len(Players)),
		keydowns: make(map[Player]string),
		hits:     make(map[Player][]cp.Vector),
		rng:      rand.New(rand.NewSource(seed)),
	}
	for _, p := range Players {
		s.Scores[p] = 0
	}
	s.installCombatHandler()
	return s
}

// SpawnFighters builds both rigs near opposite walls.
func (s *State) SpawnFighters() {
	s.Fighters[Red] = AddFighter(s.Space, RedGroup, cp.Vector{X: SpawnMargin, Y: SpawnY}, s.EnforceArmLimits)
	s.Fighters[Blue] = AddFighter(s.Space, BlueGroup, cp.Vector{X: WorldWidth - SpawnMargin, Y: SpawnY}, s.EnforceArmLimits)
}

// SetKeydown records a player's keypress, overwriting any keypress not
// yet consumed by the tick. Last key wins.
func (s *State) SetKeydown(p Player, key string) {
	s.keydowns[p] = key
}

// TakeKeydown reads and clears the player's pending keypress.
func (s *State) TakeKeydown(p Player) (string, bool) {
	key, ok := s.keydowns[p]
	if ok {
		delete(s.keydowns, p)
	}
	return key, ok
}

// AddHit records a world point where the player dealt damage.
func (s *State) AddHit(p Player, at cp.Vector) {
	s.hits[p] = append(s.hits[p], at)
}

// TakeHits reads and clears all hit points accumulated since the last
// broadcast.
func (s *State) TakeHits() map[Player][]cp.Vector {
	out := s.hits
	s.hits = make(map[Player][]cp.Vector)
	return out
}

// receiverOf finds the fighter whose damage-taking shape this is.
// Contacts on shapes belonging to neither fighter (walls, detached
// debris resting on scenery) report no receiver.
func (s *State) receiverOf(shape *cp.Shape) (Player, bool) {
	for _, p := range Players {
		f, ok := s.Fighters[p]
		if !ok {
			continue
		}
		for _, td := range f.TakeDamageShapes() {
			if td == shape {
				return p, true
			}
		}
	}
	return "", false
}
