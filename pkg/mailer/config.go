package mailer

import (
	"io/fs"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/mailtmpl/pkg/engine"
	"github.com/dmitrymomot/mailtmpl/pkg/htmltext"
	"github.com/dmitrymomot/mailtmpl/pkg/inliner"
)

// Defaults applied by DefaultConfig.
const (
	DefaultRoot            = "emails"
	DefaultExtension       = "tmpl"
	DefaultLastLocaleField = "last_locale"
)

// Config holds the pipeline configuration. Build it with DefaultConfig and
// Options; New copies everything it is given.
type Config struct {
	Transport       Transport
	Preview         Previewer
	I18n            Localizer
	Metrics         *Metrics
	Logger          *slog.Logger
	HTMLToText      *htmltext.Options
	Render          RenderFunc
	GetPath         PathFunc
	Message         Message
	Views           Views
	SubjectPrefix   string
	LastLocaleField string
	JuiceResources  inliner.Options
	JuiceSettings   inliner.Settings
	Send            bool
	CustomRender    bool
	TextOnly        bool
	Juice           bool
}

// Views locates templates and the defaults they render with.
type Views struct {
	FS      fs.FS // search root; os.DirFS(Root) when nil
	Locals  Locals
	Root    string
	Options ViewOptions
}

// ViewOptions controls extension handling and engine dispatch.
type ViewOptions struct {
	Engines   *engine.Registry
	Map       map[string]string // extension -> engine name
	Extension string
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	text := htmltext.DefaultOptions()
	return Config{
		Views: Views{
			Root: DefaultRoot,
			Options: ViewOptions{
				Extension: DefaultExtension,
				Map: map[string]string{
					"tmpl":   engine.NameGoTemplate,
					"gotmpl": engine.NameGoTemplate,
					"gohtml": engine.NameGoTemplate,
					"md":     engine.NameMarkdown,
				},
			},
			Locals: Locals{
				engine.LocalCache:  true,
				engine.LocalPretty: true,
			},
		},
		Send:            true,
		Juice:           true,
		HTMLToText:      &text,
		JuiceSettings:   inliner.DefaultSettings(),
		JuiceResources:  inliner.DefaultOptions(),
		LastLocaleField: DefaultLastLocaleField,
		GetPath:         DefaultGetPath,
	}
}

// clone copies the maps and slices the pipeline keeps.
func (c Config) clone() Config {
	c.Views.Locals = cloneLocals(c.Views.Locals)
	c.Views.Options.Map = maps.Clone(c.Views.Options.Map)
	c.Message = cloneMessage(c.Message)
	c.JuiceSettings.TableElements = slices.Clone(c.JuiceSettings.TableElements)
	if c.HTMLToText != nil {
		text := *c.HTMLToText
		c.HTMLToText = &text
	}
	return c
}

func cloneMessage(m Message) Message {
	m.Headers = maps.Clone(m.Headers)
	m.Tags = maps.Clone(m.Tags)
	m.To = slices.Clone(m.To)
	m.CC = slices.Clone(m.CC)
	m.BCC = slices.Clone(m.BCC)
	m.Attachments = slices.Clone(m.Attachments)
	return m
}
