package game

import (
	"github.com/jakecoffman/cp"
)

// collision types drive the combat handler registration: a contact
// fires only between a damage-dealing shape and a damage-taking shape.
const (
	TakeDamage cp.CollisionType = 1
	DealDamage cp.CollisionType = 2
)

// LimbName names one detachable segment of the rig.
type LimbName string

const (
	LArm   LimbName = "larm"
	RArm   LimbName = "rarm"
	LThigh LimbName = "lthigh"
	RThigh LimbName = "rthigh"
	LCalf  LimbName = "lcalf"
	RCalf  LimbName = "rcalf"
)

var LimbNames = []LimbName{LArm, RArm, LThigh, RThigh, LCalf, RCalf}

// detachment priority: extremities go first, thighs next, head last
var (
	distalLimbs   = []LimbName{LArm, RArm, LCalf, RCalf}
	proximalLimbs = []LimbName{LThigh, RThigh}
)

// Limb is one articulated segment. The constraint handles are nil once
// the limb has been detached; they are never partially present while
// attached, except Limit, which only exists for kinds whose angle range
// is enforced.
type Limb struct {
	Body  *cp.Body
	Shape *cp.Shape

	Joint  *cp.Constraint
	Spring *cp.Constraint
	Limit  *cp.Constraint
}

func (l *Limb) Attached() bool {
	return l.Joint != nil
}

// Detach permanently removes the limb's structural constraints from the
// space. The segment stays behind as a free body: still simulated,
// still able to deal contact damage, no longer connected to the rig.
// Must not be called while the space is stepping.
func (l *Limb) Detach(space *cp.Space) {
	if !l.Attached() {
		return
	}
	space.RemoveConstraint(l.Joint)
	space.RemoveConstraint(l.Spring)
	if l.Limit != nil {
		space.RemoveConstraint(l.Limit)
	}
	l.Joint, l.Spring, l.Limit = nil, nil, nil
}

// Fighter is one player's articulated body. The torso is the root and
// is never detachable; the head detaches only as the last resort after
// every limb is gone.
type Fighter struct {
	Torso      *cp.Body
	TorsoShape *cp.Shape
	Head       *Limb
	Limbs      map[LimbName]*Limb
}

// TakeDamageShapes are the surfaces that score points for the opponent
// when struck.
func (f *Fighter) TakeDamageShapes() []*cp.Shape {
	return []*cp.Shape{f.TorsoShape, f.Head.Shape}
}

// Segments maps every body of the rig by name, detached or not.
func (f *Fighter) Segments() map[string]*cp.Body {
	segs := make(map[string]*cp.Body, len(f.Limbs)+2)
	segs["torso"] = f.Torso
	segs["head"] = f.Head.Body
	for name, limb := range f.Limbs {
		segs[string(name)] = limb.Body
	}
	return segs
}

// segmentSpec is the per-kind build table for attached segments.
type segmentSpec struct {
	w, h         float64
	mass, moment float64
	parentTop    bool // anchored to the parent's top edge (shoulders) rather than bottom
	limited      bool // rotary limit enforced
}

// armLimits switches rotary limits on for the arms; their reference
// angles are defined but unenforced by default.
func segmentSpecFor(kind string, armLimits bool) segmentSpec {
	switch kind {
	case "arm":
		return segmentSpec{ArmW, ArmH, ArmMass, ArmMoment, true, armLimits}
	case "thigh":
		return segmentSpec{ThighW, ThighH, ThighMass, ThighMoment, false, true}
	case "calf":
		return segmentSpec{CalfW, CalfH, CalfMass, CalfMoment, false, true}
	}
	panic("unknown segment kind " + kind)
}

// kindOf splits a limb name into its side and kind, e.g. "lcalf" ->
// ("calf", left). An unknown name is a programmer error in the rig
// tables and panics.
func kindOf(name LimbName) (kind string, left bool) {
	s := string(name)
	if len(s) < 2 || (s[0] != 'l' && s[0] != 'r') {
		panic("unknown limb name " + s)
	}
	kind = s[1:]
	switch kind {
	case "arm", "thigh", "calf":
		return kind, s[0] == 'l'
	}
	panic("unknown limb name " + s)
}

// anchor returns the joint location in a segment's local coordinates:
// JointOffset in from the named edges. With +y down, the top edge is
// the negative-y side.
func anchor(w, h float64, top, left bool) cp.Vector {
	v := cp.Vector{X: w/2 - JointOffset, Y: h/2 - JointOffset}
	if left {
		v.X = -v.X
	}
	if top {
		v.Y = -v.Y
	}
	return v
}

// AddFighter builds one fighter at pos: torso, head, and an arm, thigh
// and calf chain per side, each fully attached (pivot joint, damped
// rotary spring toward the side-reflected rest angle, rotary limit
// where enforced). All shapes share the fighter's collision group so a
// fighter never collides with itself; torso and head take damage,
// limbs deal it.
func AddFighter(space *cp.Space, group uint, pos cp.Vector, armLimits bool) *Fighter {
	addBody := func(mass, moment float64, at cp.Vector) *cp.Body {
		body := space.AddBody(cp.NewBody(mass, moment))
		body.SetPosition(at)
		return body
	}
	addBox := func(body *cp.Body, w, h float64, ct cp.CollisionType) *cp.Shape {
		shape := space.AddShape(cp.NewBox(body, w, h, 0))
		shape.SetElasticity(Elasticity)
		shape.SetCollisionType(ct)
		shape.SetFilter(cp.NewShapeFilter(group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
		return shape
	}

	// attach creates a child segment placed so its anchor coincides
	// with the parent's matching anchor, then joins the two.
	attach := func(parent *cp.Body, pAnchor, cAnchor cp.Vector, sp segmentSpec, ref AngleRef, ct cp.CollisionType) *Limb {
		at := parent.Position().Add(pAnchor).Sub(cAnchor)
		body := addBody(sp.mass, sp.moment, at)
		shape := addBox(body, sp.w, sp.h, ct)
		limb := &Limb{
			Body:   body,
			Shape:  shape,
			Joint:  space.AddConstraint(cp.NewPivotJoint2(parent, body, pAnchor, cAnchor)),
			Spring: space.AddConstraint(cp.NewDampedRotarySpring(parent, body, ref.Rest, SpringStiffness, SpringDamping)),
		}
		if sp.limited {
			limb.Limit = space.AddConstraint(cp.NewRotaryLimitJoint(parent, body, ref.Min, ref.Max))
		}
		return limb
	}

	torso := addBody(TorsoMass, TorsoMoment, pos)
	torsoShape := addBox(torso, TorsoW, TorsoH, TakeDamage)

	// the head sits centered above the torso, offset by half its height
	// less the joint inset on each side of the joint
	headSpec := segmentSpec{HeadW, HeadH, HeadMass, HeadMoment, true, true}
	head := attach(torso,
		cp.Vector{X: 0, Y: -(TorsoH/2 - JointOffset)},
		cp.Vector{X: 0, Y: HeadH/2 - JointOffset},
		headSpec, refAngle("head", false), TakeDamage)

	// LimbNames orders thighs before calves, so a calf's parent thigh
	// already exists when the calf is built
	limbs := make(map[LimbName]*Limb, len(LimbNames))
	for _, name := range LimbNames {
		kind, left := kindOf(name)
		sp := segmentSpecFor(kind, armLimits)

		parent := torso
		pw, ph := TorsoW, TorsoH
		if kind == "calf" {
			thighName := RThigh
			if left {
				thighName = LThigh
			}
			parent = limbs[thighName].Body
			pw, ph = ThighW, ThighH
		}

		pAnchor := anchor(pw, ph, sp.parentTop, left)
		cAnchor := anchor(sp.w, sp.h, true, left) // children hang from their top anchor
		limbs[name] = attach(parent, pAnchor, cAnchor, sp, refAngle(kind, left), DealDamage)
	}

	return &Fighter{
		Torso:      torso,
		TorsoShape: torsoShape,
		Head:       head,
		Limbs:      limbs,
	}
}
