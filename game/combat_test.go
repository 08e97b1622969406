package game

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func attachedCount(f *Fighter) int {
	n := 0
	for _, limb := range f.Limbs {
		if limb.Attached() {
			n++
		}
	}
	return n
}

func TestHitScoresDealerOncePerEvent(t *testing.T) {
	s := newTestState()
	points := []cp.Vector{{X: 10, Y: 20}, {X: 12, Y: 21}}

	s.ResolveHit(s.Fighters[Red].Limbs[RArm].Shape, s.Fighters[Blue].TorsoShape, points)

	if s.Scores[Red] != 1 {
		t.Fatalf("dealer score = %d, want 1 per contact event", s.Scores[Red])
	}
	if s.Scores[Blue] != 0 {
		t.Fatalf("receiver score = %d, want 0", s.Scores[Blue])
	}

	hits := s.TakeHits()
	if len(hits[Red]) != 2 {
		t.Fatalf("recorded %d hit points, want every contact point (2)", len(hits[Red]))
	}
	if hits[Red][0] != points[0] || hits[Red][1] != points[1] {
		t.Fatalf("hit points %v, want %v", hits[Red], points)
	}
}

func TestScoresAreMonotonic(t *testing.T) {
	s := newTestState()
	for i := 1; i <= 5; i++ {
		s.ResolveHit(s.Fighters[Blue].Limbs[LCalf].Shape, s.Fighters[Red].TorsoShape, nil)
		if s.Scores[Blue] != i {
			t.Fatalf("after %d hits: score %d", i, s.Scores[Blue])
		}
	}
	if s.Scores[Red] != 0 {
		t.Fatalf("receiver gained points: %d", s.Scores[Red])
	}
}

func TestHeadShotsCountToo(t *testing.T) {
	s := newTestState()
	s.ResolveHit(s.Fighters[Red].Limbs[RCalf].Shape, s.Fighters[Blue].Head.Shape, nil)
	if s.Scores[Red] != 1 {
		t.Fatalf("head contact not scored: %d", s.Scores[Red])
	}
}

func TestNonCombatContactIgnored(t *testing.T) {
	s := newTestState()
	scenery := cp.NewBox(cp.NewBody(1, 1), 10, 10, 0)

	s.ResolveHit(s.Fighters[Red].Limbs[RArm].Shape, scenery, []cp.Vector{{X: 1, Y: 2}})

	if s.Scores[Red] != 0 || s.Scores[Blue] != 0 {
		t.Fatalf("scenery contact scored: %v", s.Scores)
	}
	hits := s.TakeHits()
	if len(hits[Red]) != 0 || len(hits[Blue]) != 0 {
		t.Fatalf("scenery contact recorded hit points")
	}
}

func TestScoreThresholdDetachesExactlyOneLimb(t *testing.T) {
	s := newTestState()
	blue := s.Fighters[Blue]
	s.Scores[Red] = DetachEvery - 1

	s.ResolveHit(s.Fighters[Red].Limbs[RArm].Shape, blue.TorsoShape, nil)
	if s.Scores[Red] != DetachEvery {
		t.Fatalf("score = %d, want %d", s.Scores[Red], DetachEvery)
	}

	// the detach itself is deferred until the space steps
	if attachedCount(blue) != 6 {
		t.Fatalf("detach ran mid-collision instead of post-step")
	}
	s.Space.Step(1.0 / (SimTickHz * StepsPerTick))
	if got := attachedCount(blue); got != 5 {
		t.Fatalf("attached after threshold = %d, want 5", got)
	}

	// the first tier is distal: thighs and head must be untouched
	for _, name := range proximalLimbs {
		if !blue.Limbs[name].Attached() {
			t.Fatalf("thigh %s detached while distal limbs remained", name)
		}
	}
	if !blue.Head.Attached() {
		t.Fatalf("head detached while limbs remained")
	}

	// a non-threshold hit detaches nothing further
	s.ResolveHit(s.Fighters[Red].Limbs[RArm].Shape, blue.TorsoShape, nil)
	s.Space.Step(1.0 / (SimTickHz * StepsPerTick))
	if got := attachedCount(blue); got != 5 {
		t.Fatalf("attached after ordinary hit = %d, want 5", got)
	}
}

func TestDetachPriorityFallsThroughTiers(t *testing.T) {
	s := newTestState()
	f := s.Fighters[Blue]

	for i := 0; i < len(distalLimbs); i++ {
		s.detachOne(f)
	}
	for _, name := range distalLimbs {
		if f.Limbs[name].Attached() {
			t.Fatalf("distal limb %s survived the distal tier", name)
		}
	}
	for _, name := range proximalLimbs {
		if !f.Limbs[name].Attached() {
			t.Fatalf("thigh %s detached before the distal tier was exhausted", name)
		}
	}

	for i := 0; i < len(proximalLimbs); i++ {
		s.detachOne(f)
	}
	if attachedCount(f) != 0 {
		t.Fatalf("limbs still attached after both tiers: %d", attachedCount(f))
	}
	if !f.Head.Attached() {
		t.Fatalf("head detached before the thigh tier was exhausted")
	}

	s.detachOne(f)
	if f.Head.Attached() {
		t.Fatalf("head survived the final tier")
	}

	// nothing left: further thresholds are a no-op, the torso stays
	s.detachOne(f)
	if f.Torso == nil {
		t.Fatalf("torso is gone")
	}
}
