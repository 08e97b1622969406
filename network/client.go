package network

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/benpastel/qwopper-bopper/protocol"
)

const (
	readLimit    = 1 << 20
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 25 * time.Second
)

// Client wraps one player's websocket. Writes come from the match loop
// and the ping loop, so they are serialized with a mutex; reads happen
// only on the match's input listener goroutine.
type Client struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
	once sync.Once
}

func NewClient(ws *websocket.Conn) *Client {
	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	c := &Client{ws: ws, done: make(chan struct{})}
	go c.pingLoop()
	return c
}

func (c *Client) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.ws.Close()
	})
	return err
}

// Done is closed once the client has been closed from either side.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// NextInput blocks for the next decoded input event. Malformed or
// unexpected messages are logged and skipped, never fatal; only a
// transport error ends the stream.
func (c *Client) NextInput() (protocol.Input, error) {
	for {
		_, b, err := c.ws.ReadMessage()
		if err != nil {
			c.Close()
			return protocol.Input{}, err
		}
		env, err := protocol.DecodeEnvelope(b)
		if err != nil {
			log.Printf("input: bad envelope: %v", err)
			continue
		}
		if env.T != protocol.MsgInput {
			log.Printf("input: unexpected message type %q", env.T)
			continue
		}
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			log.Printf("input: bad payload: %v", err)
			continue
		}
		return in, nil
	}
}

// pingLoop keeps the connection healthy; a failed ping closes the
// client, which in turn fails the read side.
func (c *Client) pingLoop() {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := c.ws.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
