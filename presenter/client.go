package presenter

import (
	"time"

	"aozora-resort/passport/passport-gate-server/msg"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer. Displays only ever send
	// control frames, anything bigger is a misbehaving peer.
	maxMessageSize = 512
)

// Client is a middleman between one display's websocket connection and
// the hub.
type Client struct {
	id   string
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	sendWsMessage chan *msg.WsMessage

	// Close request from the hub, carrying the close message payload.
	close chan []byte

	hub *Hub

	pingInterval time.Duration
	logger       *zap.SugaredLogger
}

func newClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		id:            id,
		conn:          conn,
		sendWsMessage: make(chan *msg.WsMessage, 64),
		close:         make(chan []byte, 1),
		hub:           hub,
		pingInterval:  time.Duration(*hub.config.PingIntervalSeconds) * time.Second,
		logger:        hub.loggerFactory.Create("Client").Sugar(),
	}
}

func (c *Client) run() {
	go c.writePump()
	go c.readPump()
}

// TryClose asks the write pump to shut the connection down. Safe to
// call more than once, extra requests are dropped.
func (c *Client) TryClose() {
	select {
	case c.close <- websocket.FormatCloseMessage(websocket.CloseNormalClosure, "kiosk closing"):
	default:
	}
}

// readPump only watches for pongs and disconnects; displays have
// nothing meaningful to say.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	pongWait := c.pingInterval * 5 / 2

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Errorf("id[%v] read error %v", c.id, err)
			} else {
				c.logger.Infof("id[%v] read closing %v", c.id, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	pingTicker := time.NewTicker(c.pingInterval)

	defer func() {
		pingTicker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case wsMessage := <-c.sendWsMessage:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(wsMessage); err != nil {
				c.logger.Errorf("id[%v] WriteJSON err %v", c.id, err)
				return
			}

		case closeMessage := <-c.close:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, closeMessage)
			return

		case <-pingTicker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Errorf("id[%v] ping err %v", c.id, err)
				return
			}
		}
	}
}
