// Package mailer turns named templates into complete email messages and hands
// them to a transport.
//
// A template is a directory holding up to three views, one per message part:
//
//	emails/
//	  welcome/
//	    subject.tmpl
//	    html.tmpl
//	    text.tmpl
//
// Each part is optional. Missing parts are skipped, the text part is derived
// from the html part when absent, and a message with no content at all is
// rejected with ErrEmptyMessage.
//
// # Usage
//
//	m, err := mailer.New(
//		mailer.WithFS(emails.FS),
//		mailer.WithMessage(mailer.Message{From: "team@example.com"}),
//		mailer.WithSubjectPrefix("[Acme] "),
//		mailer.WithTransport(resend.New(resend.Config{APIKey: key})),
//	)
//	if err != nil {
//		return err
//	}
//
//	res, err := m.Send(ctx, mailer.SendParams{
//		Template: mailer.T("welcome"),
//		Message:  mailer.Message{To: []string{"ada@example.com"}},
//		Locals:   mailer.Locals{"name": "Ada"},
//	})
//
// # Pipeline
//
// Send merges the call's message and locals over the configured defaults,
// then Assemble renders the subject, html and text views concurrently.
// Caller-supplied fields always win over rendered ones. Render resolves each
// view (path.<ext> or path/index.<ext>), dispatches it to the engine its
// extension maps to (see package engine), and inlines CSS into HTML output
// (see package inliner). When a Localizer is configured, locals gain
// translation helpers and the user's last known locale is activated first.
//
// # Dry runs
//
// WithSend(false) replaces the transport with a JSONTransport that only
// records messages. The replacement is permanent for the Mailer.
//
// # Errors
//
//   - ErrTemplateNotFound: no file matched a template reference
//   - ErrEngineNotFound: an extension maps to an unregistered engine
//   - ErrConfigMismatch: the mailer and the localizer disagree on the last locale field
//   - ErrInline: CSS inlining or stylesheet fetching failed
//   - ErrEmptyMessage: nothing to send
//   - ErrRenderFailed, ErrSendFailed: engine or transport failures
package mailer
