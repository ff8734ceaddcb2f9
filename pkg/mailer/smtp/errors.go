package smtp

import "errors"

var (
	ErrMissingHost  = errors.New("smtp: host is required")
	ErrInvalidTLS   = errors.New("smtp: unknown tls mode")
	ErrNoRecipients = errors.New("smtp: message has no recipients")
	ErrSendFailed   = errors.New("smtp: failed to send email")
)
