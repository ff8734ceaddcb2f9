package preview

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

var pages = template.Must(template.New("list").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Mail preview</title></head>
<body>
<h1>Mail preview</h1>
{{if not .}}<p>No messages yet.</p>{{end}}
<ul>
{{range .}}<li><a href="{{.ID}}">{{if .Message.Subject}}{{.Message.Subject}}{{else}}(no subject){{end}}</a>
 to {{range $i, $to := .Message.To}}{{if $i}}, {{end}}{{$to}}{{end}}
 <small>{{.ReceivedAt.Format "2006-01-02 15:04:05"}}</small></li>
{{end}}</ul>
</body></html>`))

var messagePage = template.Must(template.New("message").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body>
<p><a href="./">&larr; all messages</a> | <a href="{{.ID}}/text">text</a> | <a href="{{.ID}}/json">json</a></p>
<table>
<tr><th align="left">From</th><td>{{.From}}</td></tr>
<tr><th align="left">To</th><td>{{.To}}</td></tr>
<tr><th align="left">Subject</th><td>{{.Subject}}</td></tr>
{{range .Attachments}}<tr><th align="left">Attachment</th><td>{{.}}</td></tr>{{end}}
</table>
<hr>
{{if .HTML}}{{.HTML}}{{else}}<pre>{{.Text}}</pre>{{end}}
</body></html>`))

type messageView struct {
	ID          string
	From        string
	To          string
	Subject     string
	Text        string
	HTML        template.HTML
	Attachments []string
}

// Handler serves the inbox:
//
//	GET /            list of messages (JSON with ?format=json)
//	GET /{id}        sanitized HTML view of one message
//	GET /{id}/text   plain-text part
//	GET /{id}/json   full message as JSON
//	DELETE /         clear the inbox
func Handler(inbox *Inbox) http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		entries := inbox.List()
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, entries)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pages.Execute(w, entries)
	})

	r.Delete("/", func(w http.ResponseWriter, _ *http.Request) {
		inbox.Clear()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			e, ok := inbox.Get(chi.URLParam(r, "id"))
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_ = messagePage.Execute(w, newMessageView(e))
		})

		r.Get("/text", func(w http.ResponseWriter, r *http.Request) {
			e, ok := inbox.Get(chi.URLParam(r, "id"))
			if !ok {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(e.Message.Text))
		})

		r.Get("/json", func(w http.ResponseWriter, r *http.Request) {
			e, ok := inbox.Get(chi.URLParam(r, "id"))
			if !ok {
				http.NotFound(w, r)
				return
			}
			writeJSON(w, http.StatusOK, e)
		})
	})

	return r
}

func newMessageView(e Entry) messageView {
	msg := e.Message
	v := messageView{
		ID:      e.ID,
		From:    msg.From,
		To:      strings.Join(msg.To, ", "),
		Subject: msg.Subject,
		Text:    msg.Text,
		// Sanitized above; html/template must not escape it again.
		HTML: template.HTML(Sanitize(msg.HTML)), //nolint:gosec
	}
	for _, a := range msg.Attachments {
		v.Attachments = append(v.Attachments, a.Filename)
	}
	return v
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
