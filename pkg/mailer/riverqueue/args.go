package riverqueue

import (
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// Kind identifies mail delivery jobs in the river_job table.
const Kind = "mailtmpl:send"

// QueueMail is the queue delivery jobs go to unless InQueue overrides it.
const QueueMail = "mail"

// SendArgs is the River job payload: a fully assembled message.
type SendArgs struct {
	Message   *mailer.Message `json:"message"`
	UniqueKey string          `json:"unique_key,omitempty"`
}

// Kind implements river.JobArgs.
func (SendArgs) Kind() string { return Kind }
