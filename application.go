package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"aozora-resort/passport/passport-gate-server/config"
	"aozora-resort/passport/passport-gate-server/infra"
	"aozora-resort/passport/passport-gate-server/judge"
	"aozora-resort/passport/passport-gate-server/msg"
	"aozora-resort/passport/passport-gate-server/presenter"
	"aozora-resort/passport/passport-gate-server/ticket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// catalogSource is the slice of the ticket gateway the reload path
// needs; narrowed so reload behavior is testable without a server.
type catalogSource interface {
	FetchAll() ([]ticket.Record, error)
}

type Application struct {
	config       *config.Config
	kioskConfig  *config.KioskConfig
	hub          *presenter.Hub
	orchestrator *judge.Orchestrator
	cache        *ticket.Cache
	tickets      catalogSource
	wsUpgrader   *websocket.Upgrader
	logger       *zap.SugaredLogger
}

func ProvideApplication(config *config.Config, kioskConfig *config.KioskConfig,
	hub *presenter.Hub, orchestrator *judge.Orchestrator, cache *ticket.Cache,
	tickets *ticket.Gateway, loggerFactory *infra.LoggerFactory) *Application {
	return &Application{
		config:       config,
		kioskConfig:  kioskConfig,
		hub:          hub,
		orchestrator: orchestrator,
		cache:        cache,
		tickets:      tickets,
		wsUpgrader:   &websocket.Upgrader{},
		logger:       loggerFactory.Create("Application").Sugar(),
	}
}

func (a *Application) Run() {
	go a.kioskConfig.Run()
	go a.hub.Run()
	go a.reloadWorker()
}

// HandleWs attaches a gate display. Disabled kiosks turn the display
// away right after the handshake so staff see the closed notice
// instead of a dead panel.
func (a *Application) HandleWs(c echo.Context) error {
	conn, err := a.wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	if !a.kioskConfig.IsKioskEnabled() {
		rawEvent, err := json.Marshal(&msg.NoKioskServerEvent{
			Notice: a.kioskConfig.ClosedNotice(),
		})
		if err != nil {
			a.logger.Errorf("cannot marshal NoKioskServerEvent %v", err)
		}
		wsMessage := &msg.WsMessage{
			EventCode: msg.NoKioskCode,
			EventData: rawEvent,
		}
		if err := conn.WriteJSON(wsMessage); err != nil {
			a.logger.Errorf("cannot write json to ws conn %v", err)
		}

		if err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "Kiosk disabled")); err != nil {
			a.logger.Errorf("cannot write close message to ws conn %v", err)
		}
		conn.Close()
		return nil
	}

	a.hub.Attach(c.Request().RemoteAddr, conn)
	return nil
}

type judgeRequest struct {
	TktNumber string `json:"tkt_number"`
}

// HandleJudge runs one gate submission end to end. Failures along the
// way still come back as a rendered NG outcome; only an overlapping
// submission is refused outright.
func (a *Application) HandleJudge(c echo.Context) error {
	request := &judgeRequest{}
	if err := c.Bind(request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	result, err := a.orchestrator.Submit(request.TktNumber)
	if errors.Is(err, judge.ErrJudgementInFlight) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "judgement already in flight"})
	}
	if err != nil {
		return err
	}

	// Empty input is a no-op, the kiosk just refocuses its field.
	if result == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"judgement": result.Judgement,
		"entry_log": result.EntryLog,
	})
}

// HandleHealth reports whether the gate server is up and how much of
// the catalog it currently mirrors.
func (a *Application) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":       "ok",
		"kioskEnabled": a.kioskConfig.IsKioskEnabled(),
		"cached":       a.cache.Size(),
	})
}

// HandleReload is the webhook the management screens call after any
// ticket write, forcing the mirror back into full coherence.
func (a *Application) HandleReload(c echo.Context) error {
	a.reloadCache()
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"cached":  a.cache.Size(),
	})
}

// reloadCache rebuilds the mirror wholesale. On failure the previous
// contents stay; judgements keep working through backfill and the
// authoritative judge call.
func (a *Application) reloadCache() {
	records, err := a.tickets.FetchAll()
	if err != nil {
		a.logger.Errorf("cache reload failed, keeping previous contents %v", err)
		return
	}

	a.cache.LoadAll(records)
	a.logger.Infof("cache reloaded with %v tickets", a.cache.Size())
}

func (a *Application) reloadWorker() {
	ticker := time.NewTicker(time.Duration(*a.config.ReloadIntervalSeconds) * time.Second)
	for ; true; <-ticker.C {
		a.reloadCache()
	}
}
