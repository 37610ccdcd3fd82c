package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aozora-resort/passport/passport-gate-server/config"
	"aozora-resort/passport/passport-gate-server/infra"
	"aozora-resort/passport/passport-gate-server/ticket"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	records []ticket.Record
	err     error
	calls   int
}

func (f *fakeCatalog) FetchAll() ([]ticket.Record, error) {
	f.calls++
	return f.records, f.err
}

func newTestApplication(cache *ticket.Cache, catalog catalogSource) *Application {
	return &Application{
		cache:   cache,
		tickets: catalog,
		logger:  zap.NewNop().Sugar(),
	}
}

func TestReloadCacheFailureKeepsPriorContents(t *testing.T) {
	cache := ticket.ProvideCache()
	cache.LoadAll([]ticket.Record{
		{TktNumber: "10001", Age: 30},
		{TktNumber: "10002", Age: 8},
	})
	catalog := &fakeCatalog{err: errors.New("connection refused")}

	newTestApplication(cache, catalog).reloadCache()

	if catalog.calls != 1 {
		t.Fatalf("expected one catalog fetch, got %v", catalog.calls)
	}
	if cache.Size() != 2 {
		t.Fatalf("failed reload must keep prior contents, size is %v", cache.Size())
	}
	got, ok := cache.Get("10001")
	if !ok || got.Age != 30 {
		t.Fatalf("prior record lost after failed reload: %+v", got)
	}
}

func TestReloadCacheReplacesContents(t *testing.T) {
	cache := ticket.ProvideCache()
	cache.LoadAll([]ticket.Record{{TktNumber: "10001", Age: 30}})
	catalog := &fakeCatalog{records: []ticket.Record{{TktNumber: "20001", Age: 22}}}

	newTestApplication(cache, catalog).reloadCache()

	if cache.Size() != 1 {
		t.Fatalf("expected 1 cached record after reload, got %v", cache.Size())
	}
	if _, ok := cache.Get("10001"); ok {
		t.Fatal("stale record survived a successful reload")
	}
	if _, ok := cache.Get("20001"); !ok {
		t.Fatal("reloaded record missing from cache")
	}
}

func TestHandleHealth(t *testing.T) {
	cache := ticket.ProvideCache()
	cache.LoadAll([]ticket.Record{{TktNumber: "10001"}, {TktNumber: "10002"}})
	application := newTestApplication(cache, &fakeCatalog{})
	application.kioskConfig = config.ProvideKioskConfig(nil, nil, infra.ProvideLoggerFactory())

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := application.HandleHealth(c); err != nil {
		t.Fatalf("health: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", rec.Code)
	}

	body := struct {
		Status       string `json:"status"`
		KioskEnabled bool   `json:"kioskEnabled"`
		Cached       int    `json:"cached"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad health body: %v", err)
	}
	if body.Status != "ok" || !body.KioskEnabled || body.Cached != 2 {
		t.Fatalf("unexpected health body %+v", body)
	}
}
