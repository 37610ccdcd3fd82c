package ticket

// Number is the annual pass identifier typed at the gate. Format is
// validated by the management screens before a pass ever reaches us,
// so it's carried as-is here.
type Number string

// Record mirrors one annual pass row owned by the entry management
// server. Dates and timestamps stay ISO-8601 strings; nothing in this
// process interprets them, the server is the authority on validity.
type Record struct {
	TktNumber         string `json:"tkt_number"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	TicketType        string `json:"ticket_type"`
	StartDate         string `json:"start_date"`
	ExpiryDate        string `json:"expiry_date"`
	IsTransfer        bool   `json:"is_transfer"`
	PreviousTktNumber string `json:"previous_tkt_number"`
	Remarks           string `json:"remarks"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}
