// Package mailtmpl renders templated emails and hands them to a transport.
//
// A message is built from a template directory holding up to three views,
// one per part:
//
//	emails/
//	  welcome/
//	    subject.tmpl
//	    html.tmpl
//	    text.tmpl   (optional, derived from html when missing)
//
// Create a mailer from code:
//
//	m, err := mailtmpl.New(
//	    mailtmpl.WithViewsRoot("emails"),
//	    mailtmpl.WithMessage(mailtmpl.Message{From: "Acme <noreply@acme.test>"}),
//	    mailtmpl.WithTransport(resendTransport),
//	)
//
// or from a YAML file:
//
//	f, _ := os.Open("mail.yaml")
//	cfg, err := mailtmpl.LoadConfig(f)
//	m, err := mailtmpl.FromConfig(cfg, logger.New())
//
// and send:
//
//	res, err := m.Send(ctx, mailtmpl.SendParams{
//	    Template: mailtmpl.T("welcome"),
//	    Message:  mailtmpl.Message{To: []string{"ada@example.com"}},
//	    Locals:   mailtmpl.Locals{"name": "Ada"},
//	})
//
// The pipeline resolves each view, renders it with the engine mapped to its
// extension, inlines CSS into HTML, derives a text part and finally merges
// the result with caller-supplied fields. Caller fields always win.
//
// Outside production sending is disabled: messages go to a JSON transport
// that only records them, and in development each message is also written
// to an HTML preview file.
//
// The building blocks live under pkg/: mailer (the pipeline), engine,
// inliner, htmltext, i18n, preview, s3fs and the transports under
// pkg/mailer/.
package mailtmpl
