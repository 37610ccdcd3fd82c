package judge

import (
	"fmt"
	"os"
	"strconv"

	"aozora-resort/passport/passport-gate-server/infra"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

// HistoryGateway reads recent audit rows for the gate display. The
// server owns the log, we never write it directly.
type HistoryGateway struct {
	baseUrl    string
	httpClient *req.Client
	logger     *zap.SugaredLogger
}

func ProvideHistoryGateway(httpClient *req.Client, loggerFactory *infra.LoggerFactory) *HistoryGateway {
	return &HistoryGateway{
		baseUrl:    os.Getenv("REMOTE_SERVER_HOST"),
		httpClient: httpClient,
		logger:     loggerFactory.Create("HistoryGateway").Sugar(),
	}
}

func (g *HistoryGateway) FetchRecent(limit int) ([]EntryLog, error) {
	historyResult := &struct {
		Logs []EntryLog `json:"logs"`
	}{}

	resp, err := g.httpClient.R().
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(historyResult).
		Get(g.baseUrl + "/api/history")

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("history request failed with status[%v]", resp.Status)
	}

	return historyResult.Logs, nil
}
