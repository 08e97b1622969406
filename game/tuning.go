package game

const (
	WorldWidth  = 1600.0
	WorldHeight = 800.0

	SimTickHz    = 60 // fixed simulation rate
	StepsPerTick = 10 // physics sub-steps per tick, for constraint stability

	Gravity = 500.0  // +y is down, screen coordinates
	Impulse = 1000.0 // magnitude of one keypress impulse

	// segment sizes in world units
	TorsoW, TorsoH = 164.0, 254.0
	HeadW, HeadH   = 108.0, 108.0
	ArmW, ArmH     = 60.0, 220.0
	ThighW, ThighH = 60.0, 142.0
	CalfW, CalfH   = 60.0, 275.0

	// anchors sit this far inside each segment edge, so joints land
	// slightly within the visual bounds instead of exactly at the corner
	JointOffset = CalfW / 2

	TorsoMass, TorsoMoment = 100.0, 1000000.0
	HeadMass, HeadMoment   = 25.0, 100000.0
	ArmMass, ArmMoment     = 8.0, 30000.0
	ThighMass, ThighMoment = 10.0, 50000.0
	CalfMass, CalfMoment   = 5.0, 5000.0

	SpringStiffness = 2000000.0
	SpringDamping   = 80000.0

	Elasticity = 0.05

	WallFriction   = 0.5
	WallElasticity = 0.5
	WallRadius     = 10.0

	SpawnMargin = 100.0 // distance from each side wall to a fighter's spawn
	SpawnY      = 300.0

	PointsPerHit = 1
	DetachEvery  = 1000 // dealer score multiple that costs the receiver a limb
)

// collision groups; shapes sharing a non-zero group never collide
const (
	WallGroup uint = 1
	RedGroup  uint = 2
	BlueGroup uint = 3
)
