package presenter

import (
	"strconv"

	"aozora-resort/passport/passport-gate-server/judge"
	"aozora-resort/passport/passport-gate-server/msg"
)

const (
	statusLabelValid   = "判定可能"
	statusLabelInvalid = "判定不可"

	panelStyleOK = "judgement-ok"
	panelStyleNG = "judgement-ng"

	soundOK = "ok.wav"
	soundNG = "ng.wav"

	detailPlaceholder = "-"
)

// buildOutcomeEvent flattens one submission result into the frame a
// display renders verbatim. The sound cue depends on nothing but the
// result value.
func buildOutcomeEvent(result *judge.SubmissionResult) *msg.OutcomeServerEvent {
	outcome := result.Judgement

	event := &msg.OutcomeServerEvent{
		TktNumber: result.TktNumber,
		Result:    string(outcome.Result),
		Comment:   outcome.Comment,
		IsReentry: outcome.IsReentry,

		EntryTime:  detailPlaceholder,
		ExpiryDate: detailPlaceholder,
		TicketType: detailPlaceholder,
		Gender:     detailPlaceholder,
		Age:        detailPlaceholder,
	}

	if outcome.Valid {
		event.StatusLabel = statusLabelValid
	} else {
		event.StatusLabel = statusLabelInvalid
	}

	switch outcome.Result {
	case judge.ResultOK:
		event.PanelStyle = panelStyleOK
		event.Sound = soundOK
	case judge.ResultNG:
		event.PanelStyle = panelStyleNG
		event.Sound = soundNG
	}

	if t := outcome.Ticket; t != nil {
		event.ExpiryDate = t.ExpiryDate
		event.TicketType = t.TicketType
		event.Gender = t.Gender
		event.Age = strconv.Itoa(t.Age)
	}

	if entryLog := result.EntryLog; entryLog != nil {
		event.EntryTime = entryLog.EntryTime
		event.LogId = entryLog.Id
	}

	return event
}

func buildHistoryEvent(logs []judge.EntryLog) *msg.HistoryServerEvent {
	event := &msg.HistoryServerEvent{
		Logs: make([]msg.HistoryRowEvent, 0, len(logs)),
	}
	for _, entryLog := range logs {
		event.Logs = append(event.Logs, msg.HistoryRowEvent{
			Id:        entryLog.Id,
			Result:    string(entryLog.Result),
			TktNumber: entryLog.TktNumber,
			EntryTime: entryLog.EntryTime,
			Comment:   entryLog.Comment,
			IsReentry: entryLog.IsReentry,
		})
	}
	return event
}
