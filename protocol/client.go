package protocol

// messages coming in from the client.

// Join claims a side; it must be the first message on a connection.
type Join struct {
	Player string `json:"player"` // "red" or "blue"
}

// Input reports one keypress.
type Input struct {
	Keydown string `json:"keydown"`
}
