package share

import "time"

// Status is the outcome of a download attempt. These are expected terminal
// states of the link lifecycle, not faults; infrastructure errors travel as
// plain errors instead.
type Status string

const (
	StatusOK       Status = "ok"
	StatusExpired  Status = "expired"
	StatusMaxed    Status = "maxed"
	StatusNotFound Status = "not_found"
)

// Client-facing messages. MsgGone marks the case where the counter still had
// room but the object is already deleted, so callers can tell it apart from
// an ordinary exhausted link.
const (
	MsgAvailable = "File is available for download."
	MsgExpired   = "This link has expired."
	MsgMaxed     = "Maximum download limit reached."
	MsgGone      = "This file has reached its download limit and is no longer available."
	MsgNotFound  = "File not found"
)

// Decision carries everything the transport layer needs to answer a download
// or info request. Remaining is nil when the attempt never reached a state
// where a count is meaningful (e.g. not_found).
type Decision struct {
	Status      Status
	Message     string
	FileName    string
	DownloadURL string
	Remaining   *int
	ExpiresAt   time.Time
}

func NotFoundDecision() *Decision {
	return &Decision{Status: StatusNotFound, Message: MsgNotFound}
}
