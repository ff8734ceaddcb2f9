// Package preview shows rendered messages to developers instead of, or
// before, delivering them.
//
// Two previewers implement mailer.Previewer:
//
//   - Inbox keeps the most recent messages in memory and serves them over
//     HTTP with Handler.
//   - FilePreviewer writes each message to an HTML file and optionally
//     opens it, e.g. in a browser.
//
// Mount the inbox next to the application in development:
//
//	inbox := preview.NewInbox(50)
//	m, _ := mailer.New(mailer.WithPreview(inbox))
//	r.Mount("/_mail", preview.Handler(inbox))
//
// Message HTML is sanitized with bluemonday before it is served. Scripts
// and event handlers are removed while inline styles survive so the
// preview matches what a mail client shows.
package preview
