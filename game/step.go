package game

import (
	"strings"

	"github.com/jakecoffman/cp"
)

// keyBinding maps one key to an antagonist limb pair: the pair receives
// equal-and-opposite horizontal impulses, outward when open, inward
// when not.
type keyBinding struct {
	left, right LimbName
	open        bool
}

var keyBindings = map[string]keyBinding{
	"a": {LArm, RArm, true},
	"s": {LArm, RArm, false},
	"q": {LThigh, RThigh, true},
	"w": {LThigh, RThigh, false},
	"z": {LCalf, RCalf, true},
	"x": {LCalf, RCalf, false},
}

// Step advances the match by one tick: drain and apply each player's
// pending keypress, then advance the engine through StepsPerTick equal
// sub-steps.
func Step(s *State) {
	for _, p := range Players {
		applyKeydown(s, p)
	}

	dt := 1.0 / (SimTickHz * StepsPerTick)
	for i := 0; i < StepsPerTick; i++ {
		s.Space.Step(dt)
	}
}

// applyKeydown drains the player's pending keypress and turns it into
// an impulse pair. Unknown keys are ignored; so are impulses aimed at a
// limb that has been detached.
func applyKeydown(s *State, p Player) {
	key, ok := s.TakeKeydown(p)
	if !ok {
		return
	}
	binding, ok := keyBindings[strings.ToLower(key)]
	if !ok {
		return
	}

	fighter, ok := s.Fighters[p]
	if !ok {
		return
	}

	mag := Impulse
	if !binding.open {
		mag = -mag
	}
	// open pushes the right limb toward +x and the left limb toward -x
	impulse := cp.Vector{X: mag, Y: 0}
	nudge(fighter.Limbs[binding.right], impulse)
	nudge(fighter.Limbs[binding.left], impulse.Neg())
}

func nudge(l *Limb, impulse cp.Vector) {
	if !l.Attached() {
		return
	}
	l.Body.ApplyImpulseAtWorldPoint(impulse, l.Body.Position())
}
