package presenter

import (
	"encoding/json"

	"aozora-resort/passport/passport-gate-server/config"
	"aozora-resort/passport/passport-gate-server/infra"
	"aozora-resort/passport/passport-gate-server/judge"
	"aozora-resort/passport/passport-gate-server/msg"

	"github.com/emirpasic/gods/maps/hashmap"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub fans judgement outcomes and history refreshes out to every
// attached gate display. Displays are write-only sinks: nothing they
// send back influences a judgement.
type Hub struct {
	// Attached displays. Key value: client.id -> client.
	clients *hashmap.Map

	// Register requests from newly attached displays.
	register chan *Client

	// Unregister requests from displays whose connection dropped.
	unregister chan *Client

	// Terminal submission results from the orchestrator.
	outcomes chan *judge.SubmissionResult

	// Recent audit rows fetched after each judgement.
	histories chan []judge.EntryLog

	config        *config.Config
	loggerFactory *infra.LoggerFactory
	logger        *zap.SugaredLogger
}

func ProvideHub(config *config.Config, loggerFactory *infra.LoggerFactory) *Hub {
	return &Hub{
		clients: hashmap.New(),

		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		outcomes:   make(chan *judge.SubmissionResult, 64),
		histories:  make(chan []judge.EntryLog, 64),

		config:        config,
		loggerFactory: loggerFactory,
		logger:        loggerFactory.Create("Hub").Sugar(),
	}
}

func (h *Hub) Run() {
	go h.handleDisplays()
}

// PresentOutcome implements judge.Presenter.
func (h *Hub) PresentOutcome(result *judge.SubmissionResult) {
	h.outcomes <- result
}

// PresentHistory implements judge.Presenter.
func (h *Hub) PresentHistory(logs []judge.EntryLog) {
	h.histories <- logs
}

// Attach wraps an upgraded connection into a client and starts its
// pumps. Called from the ws handler.
func (h *Hub) Attach(id string, conn *websocket.Conn) {
	client := newClient(id, conn, h)
	h.register <- client
	client.run()
}

// All client registry access happens in this goroutine, so the map
// itself needs no lock.
func (h *Hub) handleDisplays() {
	for {
		select {
		case client := <-h.register:
			h.logger.Infof("register display id[%v]", client.id)
			h.clients.Put(client.id, client)

		case client := <-h.unregister:
			h.logger.Infof("unregister display id[%v]", client.id)

			_, ok := h.clients.Get(client.id)
			if !ok {
				continue
			}
			h.removeClient(client)

		case result := <-h.outcomes:
			h.logger.Debugf("broadcasting outcome tktNumber[%v] result[%v]",
				result.TktNumber, result.Judgement.Result)
			h.broadcastEvent(msg.OutcomeCode, buildOutcomeEvent(result))

		case logs := <-h.histories:
			h.logger.Debugf("broadcasting history refresh with %v rows", len(logs))
			h.broadcastEvent(msg.HistoryCode, buildHistoryEvent(logs))
		}
	}
}

func (h *Hub) broadcastEvent(eventCode msg.EventCode, event interface{}) {
	rawEvent, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("cannot marshal event code[%v] %v", eventCode, err)
		return
	}

	wsMessage := &msg.WsMessage{
		EventCode: eventCode,
		EventData: rawEvent,
	}

	for _, value := range h.clients.Values() {
		client := value.(*Client)
		select {
		case client.sendWsMessage <- wsMessage:
		default:
			// Send buffer full means the display is dead or stuck.
			h.logger.Warnf("display id[%v] send buffer full, closing it", client.id)
			h.removeClient(client)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.clients.Remove(client.id)
	client.TryClose()
}
