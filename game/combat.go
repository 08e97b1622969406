package game

import (
	"math/rand"

	"github.com/jakecoffman/cp"
)

// installCombatHandler registers the combat resolver for contacts
// between damage-dealing and damage-taking shapes. The match state
// rides on the handler's UserData so the callback gets an explicit
// handle instead of a captured reference.
func (s *State) installCombatHandler() {
	handler := s.Space.NewCollisionHandler(DealDamage, TakeDamage)
	handler.UserData = s
	handler.BeginFunc = beginHit
}

// beginHit fires once per new contact between a dealing shape and a
// taking shape. Returning true keeps the normal collision response;
// damage never suppresses the physical bounce.
func beginHit(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	s := userData.(*State)
	dealShape, takeShape := arb.Shapes()

	set := arb.ContactPointSet()
	points := make([]cp.Vector, 0, set.Count)
	for i := 0; i < set.Count; i++ {
		// the point on the struck surface, where clients draw the hit
		points = append(points, set.Points[i].PointB)
	}

	s.ResolveHit(dealShape, takeShape, points)
	return true
}

// ResolveHit attributes a contact to the dealing player, scores it, and
// costs the receiver a limb when the dealer's score reaches a
// DetachEvery multiple. A contact whose struck shape belongs to neither
// fighter is not combat and is ignored. One contact event scores one
// point no matter how many contact points it reports, but every point
// is recorded for effects.
func (s *State) ResolveHit(dealShape, takeShape *cp.Shape, points []cp.Vector) {
	receiver, ok := s.receiverOf(takeShape)
	if !ok {
		return
	}
	dealer := Other(receiver)

	s.Scores[dealer] += PointsPerHit
	for _, pt := range points {
		s.AddHit(dealer, pt)
	}

	if s.Scores[dealer]%DetachEvery == 0 {
		// constraints cannot be removed while the space is stepping, so
		// the actual detach runs in a post-step callback
		s.Space.AddPostStepCallback(detachCallback, s.Fighters[receiver], s)
	}
}

func detachCallback(space *cp.Space, key interface{}, data interface{}) {
	data.(*State).detachOne(key.(*Fighter))
}

// detachOne removes one limb from the fighter: a random attached
// distal limb (arms, calves) if any remain, else a random thigh, else
// the head. The torso is never detachable, so with everything else
// gone this does nothing.
func (s *State) detachOne(f *Fighter) {
	if limb, ok := pickAttached(f, distalLimbs, s.rng); ok {
		limb.Detach(s.Space)
		return
	}
	if limb, ok := pickAttached(f, proximalLimbs, s.rng); ok {
		limb.Detach(s.Space)
		return
	}
	f.Head.Detach(s.Space)
}

func pickAttached(f *Fighter, names []LimbName, rng *rand.Rand) (*Limb, bool) {
	attached := make([]*Limb, 0, len(names))
	for _, name := range names {
		if limb := f.Limbs[name]; limb.Attached() {
			attached = append(attached, limb)
		}
	}
	if len(attached) == 0 {
		return nil, false
	}
	return attached[rng.Intn(len(attached))], true
}
