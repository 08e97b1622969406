package protocol

type Welcome struct {
	Player string `json:"player"`
	TickHz int    `json:"tickHz"`
}

// State is the per-tick snapshot sent identically to both players.
type State struct {
	Positions map[string]map[string]Position `json:"positions"` // player -> segment -> pose
	Hits      map[string][]Point             `json:"hits"`      // dealer -> points struck this tick
	Scores    map[string]int                 `json:"scores"`
}

type Position struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type GameOver struct {
	Scores map[string]int `json:"scores"`
}
