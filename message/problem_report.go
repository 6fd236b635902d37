package message

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	NotificationProtocol = "did:sov:BzCbsNYhMrjHiqZDTUASHg;spec/notification/1.0"
	TypeProblemReport    = NotificationProtocol + "/problem-report"

	WhoRetriesNone = "none"
	WhoRetriesMe   = "me"
	WhoRetriesYou  = "you"
	WhoRetriesBoth = "both"
)

// ProblemReport is a human readable failure explanation correlated to the
// request that caused it.
type ProblemReport struct {
	Header
	ExplainLongText string `json:"explain-ltxt,omitempty"`
	ProblemCode     string `json:"problem_code,omitempty"`
	WhoRetries      string `json:"who_retries,omitempty"`
}

func (ProblemReport) Type() string { return TypeProblemReport }

// NewProblemReport builds a report threaded to parent.
func NewProblemReport(parent Message, explain string, whoRetries string) ProblemReport {
	report := ProblemReport{
		Header:          NewHeader(TypeProblemReport),
		ExplainLongText: explain,
		WhoRetries:      whoRetries,
	}
	report.AssignThreadFrom(parent)
	return report
}

func (m ProblemReport) Validate() error {
	return Check(validation.ValidateStruct(&m,
		validation.Field(&m.ExplainLongText, validation.Required),
		validation.Field(&m.WhoRetries, validation.In(WhoRetriesNone, WhoRetriesMe, WhoRetriesYou, WhoRetriesBoth)),
	))
}
