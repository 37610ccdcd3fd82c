package msg

type EventCode uint

const (
	NoKioskCode EventCode = 2000
	OutcomeCode EventCode = 2001
	HistoryCode EventCode = 2002
)

// NoKioskServerEvent turns a display away when the kiosk is disabled.
type NoKioskServerEvent struct {
	Notice string `json:"notice"`
}

// OutcomeServerEvent is one fully rendered judgement. Detail fields
// carry "-" placeholders when the outcome resolved no ticket. Sound is
// keyed solely by the result value.
type OutcomeServerEvent struct {
	TktNumber   string `json:"tktNumber"`
	StatusLabel string `json:"statusLabel"`
	PanelStyle  string `json:"panelStyle"`
	Result      string `json:"result"`
	Comment     string `json:"comment,omitempty"`
	IsReentry   bool   `json:"isReentry"`
	Sound       string `json:"sound"`

	EntryTime  string `json:"entryTime"`
	ExpiryDate string `json:"expiryDate"`
	TicketType string `json:"ticketType"`
	Gender     string `json:"gender"`
	Age        string `json:"age"`

	// Zero when the attempt was never durably logged server-side.
	LogId int64 `json:"logId,omitempty"`
}

// HistoryServerEvent refreshes the recent-attempts table on displays.
type HistoryServerEvent struct {
	Logs []HistoryRowEvent `json:"logs"`
}

type HistoryRowEvent struct {
	Id        int64  `json:"id"`
	Result    string `json:"result"`
	TktNumber string `json:"tktNumber"`
	EntryTime string `json:"entryTime"`
	Comment   string `json:"comment"`
	IsReentry bool   `json:"isReentry"`
}
