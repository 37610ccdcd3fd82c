package judge

import (
	"encoding/json"
	"fmt"
	"os"

	"aozora-resort/passport/passport-gate-server/infra"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

// RemoteError is a non-2xx answer from the judge endpoint carrying the
// server's own error text.
type RemoteError struct {
	Status string
	Text   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("judge request failed with status[%v] error[%v]", e.Status, e.Text)
}

// Gateway wraps the single endpoint that decides admission and writes
// the audit log. One submission maps to exactly one call here.
type Gateway struct {
	baseUrl    string
	httpClient *req.Client
	logger     *zap.SugaredLogger
}

func ProvideGateway(httpClient *req.Client, loggerFactory *infra.LoggerFactory) *Gateway {
	return &Gateway{
		baseUrl:    os.Getenv("REMOTE_SERVER_HOST"),
		httpClient: httpClient,
		logger:     loggerFactory.Create("JudgeGateway").Sugar(),
	}
}

// Judge submits the raw tkt number for an authoritative decision and
// returns the outcome together with the audit row the server recorded.
func (g *Gateway) Judge(tktNumber string) (*Outcome, *EntryLog, error) {
	judgeResult := &struct {
		Success   bool      `json:"success"`
		Judgement *Outcome  `json:"judgement"`
		EntryLog  *EntryLog `json:"entry_log"`
	}{}

	resp, err := g.httpClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"tkt_number": tktNumber}).
		SetResult(judgeResult).
		// The server logs every judgement. Retrying would double the
		// audit rows, so this request never retries.
		SetRetryCount(0).
		Post(g.baseUrl + "/api/entry/judge")

	if err != nil {
		return nil, nil, err
	}

	if resp.IsError() {
		errResult := &struct {
			Error string `json:"error"`
		}{}
		if err := json.Unmarshal(resp.Bytes(), errResult); err != nil {
			g.logger.Warnf("cannot parse error payload from judge endpoint %v", err)
		}
		return nil, nil, &RemoteError{Status: resp.Status, Text: errResult.Error}
	}

	if judgeResult.Judgement == nil {
		return nil, nil, fmt.Errorf("judge endpoint answered 2xx without a judgement payload")
	}

	g.logger.Infof("judged tktNumber[%v] result[%v] comment[%v]",
		tktNumber, judgeResult.Judgement.Result, judgeResult.Judgement.Comment)
	return judgeResult.Judgement, judgeResult.EntryLog, nil
}
