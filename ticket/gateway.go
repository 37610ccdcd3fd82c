package ticket

import (
	"fmt"
	"net/http"
	"os"

	"aozora-resort/passport/passport-gate-server/infra"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

// Gateway reads the pass catalog from the entry management server. It
// does not retry beyond the shared client policy and does not cache,
// that's the caller's job.
type Gateway struct {
	baseUrl    string
	httpClient *req.Client
	logger     *zap.SugaredLogger
}

func ProvideGateway(httpClient *req.Client, loggerFactory *infra.LoggerFactory) *Gateway {
	return &Gateway{
		baseUrl:    os.Getenv("REMOTE_SERVER_HOST"),
		httpClient: httpClient,
		logger:     loggerFactory.Create("TicketGateway").Sugar(),
	}
}

// FetchAll retrieves the full catalog.
func (g *Gateway) FetchAll() ([]Record, error) {
	listResult := &struct {
		Tickets []Record `json:"tickets"`
	}{}

	resp, err := g.httpClient.R().
		SetResult(listResult).
		Get(g.baseUrl + "/api/tickets")

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("ticket list request failed with status[%v]", resp.Status)
	}

	g.logger.Debugf("fetched %v tickets from catalog", len(listResult.Tickets))
	return listResult.Tickets, nil
}

// FetchOne retrieves a single pass. Returns nil without error when the
// server doesn't know the number; the judge call happens regardless.
func (g *Gateway) FetchOne(number Number) (*Record, error) {
	oneResult := &struct {
		Ticket *Record `json:"ticket"`
	}{}

	resp, err := g.httpClient.R().
		SetResult(oneResult).
		Get(fmt.Sprintf("%v/api/tickets/%v", g.baseUrl, number))

	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.IsError() {
		return nil, fmt.Errorf("ticket fetch request failed with status[%v]", resp.Status)
	}

	return oneResult.Ticket, nil
}
