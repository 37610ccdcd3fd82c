package ticket

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

func newTestGateway(baseUrl string) *Gateway {
	return &Gateway{
		baseUrl:    baseUrl,
		httpClient: req.C(),
		logger:     zap.NewNop().Sugar(),
	}
}

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tickets" {
			t.Fatalf("unexpected path %v", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"tickets":[
			{"tkt_number":"10001","age":30,"gender":"男性","ticket_type":"大人","expiry_date":"2025-12-31"},
			{"tkt_number":"10002","age":8,"gender":"女性","ticket_type":"子供","expiry_date":"2026-03-31"}
		]}`))
	}))
	defer srv.Close()

	records, err := newTestGateway(srv.URL).FetchAll()
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", len(records))
	}
	if records[0].TktNumber != "10001" || records[0].Age != 30 {
		t.Fatalf("unexpected first record %+v", records[0])
	}
}

func TestFetchAllServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"チケット取得エラー"}`))
	}))
	defer srv.Close()

	if _, err := newTestGateway(srv.URL).FetchAll(); err == nil {
		t.Fatal("expected error on non-2xx")
	}
}

func TestFetchOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tickets/10001" {
			t.Fatalf("unexpected path %v", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"ticket":{"tkt_number":"10001","age":30}}`))
	}))
	defer srv.Close()

	record, err := newTestGateway(srv.URL).FetchOne("10001")
	if err != nil {
		t.Fatalf("fetch one: %v", err)
	}
	if record == nil || record.TktNumber != "10001" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestFetchOneAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"チケットが見つかりません"}`))
	}))
	defer srv.Close()

	record, err := newTestGateway(srv.URL).FetchOne("99999")
	if err != nil {
		t.Fatalf("absence is not an error: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record for unknown tktNumber, got %+v", record)
	}
}

func TestFetchOneTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if _, err := newTestGateway(srv.URL).FetchOne("10001"); err == nil {
		t.Fatal("expected transport error")
	}
}
