package judge

import "aozora-resort/passport/passport-gate-server/ticket"

// Result of an admission judgement. The server produces no third value.
type Result string

const (
	ResultOK Result = "OK"
	ResultNG Result = "NG"
)

// Outcome is the server's admission decision. Synthesized locally only
// when the judge endpoint can't be reached, never mutated afterwards.
type Outcome struct {
	Valid     bool           `json:"valid"`
	Result    Result         `json:"result"`
	Comment   string         `json:"comment"`
	IsReentry bool           `json:"is_reentry"`
	Ticket    *ticket.Record `json:"ticket"`
}

// EntryLog is one audit row, owned and persisted by the server. Id is
// zero for outcomes synthesized on transport failure, those were never
// durably logged as far as we know.
type EntryLog struct {
	Id        int64  `json:"id,omitempty"`
	TktNumber string `json:"tkt_number"`
	EntryTime string `json:"entry_time"`
	Result    Result `json:"result"`
	Comment   string `json:"comment"`
	IsReentry bool   `json:"is_reentry"`
	CreatedAt string `json:"created_at,omitempty"`
}
