package judge

import (
	"errors"
	"strings"
	"sync"
	"time"

	"aozora-resort/passport/passport-gate-server/config"
	"aozora-resort/passport/passport-gate-server/infra"
	"aozora-resort/passport/passport-gate-server/ticket"

	"go.uber.org/zap"
)

// ErrJudgementInFlight rejects a submission while a previous one hasn't
// reached its terminal state yet. Rapid double scans at the turnstile
// should fail fast instead of stacking behind each other.
var ErrJudgementInFlight = errors.New("another judgement is in flight")

// Comment shown when the judge endpoint can't be reached at all.
const transportFailureComment = "判定処理中にエラーが発生しました"

// TicketSource backfills single cache misses from the catalog.
type TicketSource interface {
	FetchOne(number ticket.Number) (*ticket.Record, error)
}

// Judger performs the authoritative admission decision.
type Judger interface {
	Judge(tktNumber string) (*Outcome, *EntryLog, error)
}

// HistorySource lists recent audit rows for the display refresh.
type HistorySource interface {
	FetchRecent(limit int) ([]EntryLog, error)
}

// Presenter renders a terminal submission state. Each call is
// independent; replaying the same result produces the same visible
// state (and replays the sound cue, wanted at a turnstile).
type Presenter interface {
	PresentOutcome(result *SubmissionResult)
	PresentHistory(logs []EntryLog)
}

// SubmissionResult is what one gate submission terminates in. TktNumber
// is always the raw submitted value, even when the outcome carries no
// ticket.
type SubmissionResult struct {
	TktNumber string
	Judgement *Outcome
	EntryLog  *EntryLog
}

// Orchestrator sequences one gate submission: cache lookup, optional
// backfill, the unconditional judge call, then rendering. The cache is
// only an accelerator here; hit or miss, the judge endpoint sees every
// submission because it is the sole authority and the sole writer of
// the audit log.
type Orchestrator struct {
	cache     *ticket.Cache
	tickets   TicketSource
	judger    Judger
	history   HistorySource
	presenter Presenter
	config    *config.Config

	// Explicit single-flight guard. The old kiosk page relied on the
	// input field being cleared only after the previous round trip.
	inFlight sync.Mutex

	logger *zap.SugaredLogger
}

func ProvideOrchestrator(cache *ticket.Cache, tickets TicketSource, judger Judger,
	history HistorySource, presenter Presenter, config *config.Config,
	loggerFactory *infra.LoggerFactory) *Orchestrator {
	return &Orchestrator{
		cache:     cache,
		tickets:   tickets,
		judger:    judger,
		history:   history,
		presenter: presenter,
		config:    config,
		logger:    loggerFactory.Create("Orchestrator").Sugar(),
	}
}

// Submit runs the full judgement flow for one typed tkt number. Empty
// input is a no-op, not an error: the result is nil and nothing is
// rendered. Every non-empty submission terminates in exactly one
// rendered outcome, whatever fails along the way.
func (o *Orchestrator) Submit(tktNumber string) (*SubmissionResult, error) {
	tktNumber = strings.TrimSpace(tktNumber)
	if tktNumber == "" {
		return nil, nil
	}

	if !o.inFlight.TryLock() {
		o.logger.Warnf("rejected tktNumber[%v], judgement already in flight", tktNumber)
		return nil, ErrJudgementInFlight
	}
	defer o.inFlight.Unlock()

	number := ticket.Number(tktNumber)
	if _, ok := o.cache.Get(number); !ok {
		o.backfill(number)
	}

	result := o.judge(tktNumber)
	o.presenter.PresentOutcome(result)
	o.refreshHistory()

	return result, nil
}

// backfill repairs a cache miss from the catalog. Failure or absence
// never blocks the judgement: the server may know passes that aren't
// mirrored locally yet.
func (o *Orchestrator) backfill(number ticket.Number) {
	record, err := o.tickets.FetchOne(number)
	if err != nil {
		o.logger.Warnf("backfill failed for tktNumber[%v], judging anyway %v", number, err)
		return
	}
	if record == nil {
		o.logger.Infof("tktNumber[%v] unknown to catalog, judging anyway", number)
		return
	}

	o.cache.Upsert(number, record)
	o.logger.Debugf("backfilled tktNumber[%v] into cache", number)
}

// judge asks the server for the decision and folds any failure into a
// locally synthesized NG outcome so the gate always renders something.
// A synthesized audit row carries no id; whether the server logged the
// attempt before the connection dropped is unknowable from here.
func (o *Orchestrator) judge(tktNumber string) *SubmissionResult {
	outcome, entryLog, err := o.judger.Judge(tktNumber)
	if err == nil {
		return &SubmissionResult{
			TktNumber: tktNumber,
			Judgement: outcome,
			EntryLog:  entryLog,
		}
	}

	o.logger.Errorf("judge call failed for tktNumber[%v] %v", tktNumber, err)

	comment := transportFailureComment
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Text != "" {
		comment = remoteErr.Text
	}

	return &SubmissionResult{
		TktNumber: tktNumber,
		Judgement: &Outcome{
			Valid:   false,
			Result:  ResultNG,
			Comment: comment,
		},
		EntryLog: &EntryLog{
			TktNumber: tktNumber,
			EntryTime: time.Now().Format(time.RFC3339),
			Result:    ResultNG,
			Comment:   comment,
		},
	}
}

// refreshHistory is best effort. After a transport failure the server
// may still have logged the attempt, so it runs even then.
func (o *Orchestrator) refreshHistory() {
	logs, err := o.history.FetchRecent(*o.config.HistoryLimit)
	if err != nil {
		o.logger.Warnf("history refresh failed %v", err)
		return
	}

	o.presenter.PresentHistory(logs)
}
