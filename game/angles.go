package game

import "math"

// AngleRef is the resting pose and joint range for one segment kind,
// expressed as the relative angle between the segment and its parent.
// Values are for the right side; the left side is the mirror image.
type AngleRef struct {
	Rest, Min, Max float64
}

// reflect mirrors the reference angles for the left side: rest flips
// sign and the range is negated with min/max swapped so it stays sorted.
func (a AngleRef) reflect() AngleRef {
	return AngleRef{Rest: -a.Rest, Min: -a.Max, Max: -a.Min}
}

var refAngles = map[string]AngleRef{
	"arm":   {Rest: math.Pi / 3, Min: -math.Pi / 2, Max: math.Pi / 2},
	"thigh": {Rest: math.Pi / 10, Min: -math.Pi / 8, Max: math.Pi / 2},
	"calf":  {Rest: -math.Pi / 10, Min: -3 * math.Pi / 4, Max: 0},
	"head":  {Rest: 0, Min: -math.Pi / 8, Max: math.Pi / 8},
}

// refAngle looks up the reference angles for a segment kind, mirrored
// when the segment is on the left side. Unknown kinds are a programmer
// error in the rig tables and fail loudly.
func refAngle(kind string, left bool) AngleRef {
	ref, ok := refAngles[kind]
	if !ok {
		panic("no reference angles for segment kind " + kind)
	}
	if left {
		ref = ref.reflect()
	}
	return ref
}
