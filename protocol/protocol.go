package protocol

import (
	"encoding/json"
)

const (
	MsgJoin     = "join"
	MsgInput    = "input"
	MsgWelcome  = "welcome"
	MsgState    = "state"
	MsgGameOver = "gameover"
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
