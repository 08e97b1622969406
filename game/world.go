package game

import "github.com/jakecoffman/cp"

// newSpace creates the physics world: gravity pulling toward the
// bottom of the frame and four boundary walls just outside it.
func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: Gravity})
	addWalls(space)
	return space
}

func addWalls(space *cp.Space) {
	inset := WallRadius
	corners := []cp.Vector{
		{X: -inset, Y: -inset},
		{X: WorldWidth + inset, Y: -inset},
		{X: WorldWidth + inset, Y: WorldHeight + inset},
		{X: -inset, Y: WorldHeight + inset},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		wall := cp.NewSegment(space.StaticBody, a, b, WallRadius)
		wall.SetFriction(WallFriction)
		wall.SetElasticity(WallElasticity)
		wall.SetFilter(cp.NewShapeFilter(WallGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
		space.AddShape(wall)
	}
}
