package game

import (
	"math"
	"testing"
)

func newTestState() *State {
	s := NewState(1)
	s.SpawnFighters()
	return s
}

func TestFighterStartsFullyAttached(t *testing.T) {
	s := newTestState()
	for _, p := range Players {
		f := s.Fighters[p]
		if len(f.Limbs) != len(LimbNames) {
			t.Fatalf("%s: %d limbs, want %d", p, len(f.Limbs), len(LimbNames))
		}
		for _, name := range LimbNames {
			limb := f.Limbs[name]
			if !limb.Attached() {
				t.Fatalf("%s %s: not attached after construction", p, name)
			}
			if limb.Joint == nil || limb.Spring == nil {
				t.Fatalf("%s %s: missing joint or spring while attached", p, name)
			}
		}
		// thighs and calves enforce angle limits; arms do not by default
		for _, name := range []LimbName{LThigh, RThigh, LCalf, RCalf} {
			if f.Limbs[name].Limit == nil {
				t.Fatalf("%s %s: no rotary limit", p, name)
			}
		}
		for _, name := range []LimbName{LArm, RArm} {
			if f.Limbs[name].Limit != nil {
				t.Fatalf("%s %s: arm limits enforced by default", p, name)
			}
		}
		if !f.Head.Attached() {
			t.Fatalf("%s: head not attached after construction", p)
		}
	}
}

func TestTorsoAndHeadAreNotInLimbSet(t *testing.T) {
	s := newTestState()
	f := s.Fighters[Red]
	for _, name := range LimbNames {
		if name == "torso" || name == "head" {
			t.Fatalf("limb set contains %s", name)
		}
	}
	segs := f.Segments()
	if len(segs) != len(LimbNames)+2 {
		t.Fatalf("segments = %d, want %d", len(segs), len(LimbNames)+2)
	}
	if segs["torso"] != f.Torso || segs["head"] != f.Head.Body {
		t.Fatalf("segments missing torso or head")
	}
}

func TestAnchorsCoincideAtSpawn(t *testing.T) {
	s := newTestState()
	f := s.Fighters[Red]

	for _, name := range LimbNames {
		kind, left := kindOf(name)
		sp := segmentSpecFor(kind, false)

		parent := f.Torso
		pw, ph := TorsoW, TorsoH
		if kind == "calf" {
			thighName := RThigh
			if left {
				thighName = LThigh
			}
			parent = f.Limbs[thighName].Body
			pw, ph = ThighW, ThighH
		}

		pWorld := parent.Position().Add(anchor(pw, ph, sp.parentTop, left))
		cWorld := f.Limbs[name].Body.Position().Add(anchor(sp.w, sp.h, true, left))
		if math.Abs(pWorld.X-cWorld.X) > 1e-9 || math.Abs(pWorld.Y-cWorld.Y) > 1e-9 {
			t.Fatalf("%s: anchor gap at spawn: parent %v child %v", name, pWorld, cWorld)
		}
	}
}

func TestDetachIsPermanentAndIdempotent(t *testing.T) {
	s := newTestState()
	limb := s.Fighters[Red].Limbs[LArm]

	limb.Detach(s.Space)
	if limb.Attached() {
		t.Fatalf("limb still attached after detach")
	}
	if limb.Joint != nil || limb.Spring != nil || limb.Limit != nil {
		t.Fatalf("detached limb still holds constraint handles")
	}
	if limb.Body == nil || limb.Shape == nil {
		t.Fatalf("detached limb lost its body or shape")
	}

	// a second detach must be a no-op, not a panic
	limb.Detach(s.Space)
	if limb.Attached() {
		t.Fatalf("limb re-attached itself")
	}
}

func TestArmLimitsAreConfigurable(t *testing.T) {
	s := NewState(1)
	s.EnforceArmLimits = true
	s.SpawnFighters()

	for _, p := range Players {
		for _, name := range []LimbName{LArm, RArm} {
			if s.Fighters[p].Limbs[name].Limit == nil {
				t.Fatalf("%s %s: no rotary limit with EnforceArmLimits set", p, name)
			}
		}
	}
}

func TestLeftAnglesMirrorRight(t *testing.T) {
	right := refAngle("thigh", false)
	left := refAngle("thigh", true)
	if left.Rest != -right.Rest {
		t.Fatalf("left rest = %f, want %f", left.Rest, -right.Rest)
	}
	if left.Min != -right.Max || left.Max != -right.Min {
		t.Fatalf("left range [%f, %f] is not the mirror of [%f, %f]",
			left.Min, left.Max, right.Min, right.Max)
	}
	if left.Min > left.Max {
		t.Fatalf("left range not sorted: [%f, %f]", left.Min, left.Max)
	}
}

func TestUnknownLimbNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown limb name")
		}
	}()
	kindOf("knee")
}
