package mailer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"strings"

	"github.com/dmitrymomot/mailtmpl/pkg/engine"
	"github.com/dmitrymomot/mailtmpl/pkg/htmltext"
	"github.com/dmitrymomot/mailtmpl/pkg/inliner"
)

// Option configures a Mailer.
type Option func(*Config) error

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) error {
		*c = cfg
		return nil
	}
}

// WithViewsRoot sets the base directory for relative template names.
func WithViewsRoot(root string) Option {
	return func(c *Config) error {
		if root == "" {
			return fmt.Errorf("%w: empty views root", ErrInvalidConfig)
		}
		c.Views.Root = root
		return nil
	}
}

// WithFS serves templates from fsys instead of the views root directory.
func WithFS(fsys fs.FS) Option {
	return func(c *Config) error {
		c.Views.FS = fsys
		return nil
	}
}

// WithExtension sets the default template file extension.
func WithExtension(ext string) Option {
	return func(c *Config) error {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			return fmt.Errorf("%w: empty extension", ErrInvalidConfig)
		}
		c.Views.Options.Extension = ext
		return nil
	}
}

// WithEngineMap replaces the extension to engine-name table.
// An empty map makes .html views render as raw files.
func WithEngineMap(m map[string]string) Option {
	return func(c *Config) error {
		c.Views.Options.Map = maps.Clone(m)
		return nil
	}
}

// WithEngines sets the engine registry.
func WithEngines(r *engine.Registry) Option {
	return func(c *Config) error {
		c.Views.Options.Engines = r
		return nil
	}
}

// WithLocals merges default locals under every per-call locals.
func WithLocals(locals Locals) Option {
	return func(c *Config) error {
		c.Views.Locals = mergeLocals(c.Views.Locals, locals)
		return nil
	}
}

// WithMessage sets the default message fields.
func WithMessage(msg Message) Option {
	return func(c *Config) error {
		c.Message = msg
		return nil
	}
}

// WithSend enables or disables delivery. Disabled delivery records messages
// in a JSON transport.
func WithSend(send bool) Option {
	return func(c *Config) error {
		c.Send = send
		return nil
	}
}

// WithPreview shows every message through p before sending.
func WithPreview(p Previewer) Option {
	return func(c *Config) error {
		c.Preview = p
		return nil
	}
}

// WithI18n enables the locale adapter.
func WithI18n(l Localizer) Option {
	return func(c *Config) error {
		c.I18n = l
		return nil
	}
}

// WithRender replaces the built-in engine dispatcher.
func WithRender(fn RenderFunc) Option {
	return func(c *Config) error {
		c.Render = fn
		return nil
	}
}

// WithCustomRender skips the template existence check before each part is
// rendered.
func WithCustomRender(custom bool) Option {
	return func(c *Config) error {
		c.CustomRender = custom
		return nil
	}
}

// WithTextOnly drops the html part from every message.
func WithTextOnly(textOnly bool) Option {
	return func(c *Config) error {
		c.TextOnly = textOnly
		return nil
	}
}

// WithHTMLToText sets the options used to derive the text part from html.
func WithHTMLToText(opts htmltext.Options) Option {
	return func(c *Config) error {
		c.HTMLToText = &opts
		return nil
	}
}

// WithoutHTMLToText disables text part generation.
func WithoutHTMLToText() Option {
	return func(c *Config) error {
		c.HTMLToText = nil
		return nil
	}
}

// WithSubjectPrefix prepends prefix to every rendered subject.
func WithSubjectPrefix(prefix string) Option {
	return func(c *Config) error {
		c.SubjectPrefix = prefix
		return nil
	}
}

// WithJuice enables or disables CSS inlining.
func WithJuice(enabled bool) Option {
	return func(c *Config) error {
		c.Juice = enabled
		return nil
	}
}

// WithJuiceSettings sets the CSS inliner settings.
func WithJuiceSettings(s inliner.Settings) Option {
	return func(c *Config) error {
		c.JuiceSettings = s
		return nil
	}
}

// WithJuiceResources merges opts over the default CSS inlining options.
func WithJuiceResources(opts inliner.Options) Option {
	return func(c *Config) error {
		merged, err := c.JuiceResources.Merge(opts)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		c.JuiceResources = merged
		return nil
	}
}

// WithTransport sets the delivery transport.
func WithTransport(t Transport) Option {
	return func(c *Config) error {
		c.Transport = t
		return nil
	}
}

// WithLastLocaleField sets the user field copied into locals["locale"].
func WithLastLocaleField(field string) Option {
	return func(c *Config) error {
		c.LastLocaleField = field
		return nil
	}
}

// WithGetPath sets the builder of per-part view paths.
func WithGetPath(fn PathFunc) Option {
	return func(c *Config) error {
		if fn == nil {
			return fmt.Errorf("%w: nil path func", ErrInvalidConfig)
		}
		c.GetPath = fn
		return nil
	}
}

// WithLogger sets the logger. Loggers from pkg/logger tag Send records
// with the template name.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// WithMetrics records pipeline metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) error {
		c.Metrics = m
		return nil
	}
}

// Environment names understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// WithEnvironment applies environment defaults: development and test disable
// sending, development also disables the template cache.
func WithEnvironment(env string) Option {
	return func(c *Config) error {
		switch env {
		case EnvDevelopment:
			c.Send = false
			c.Views.Locals = mergeLocals(c.Views.Locals, Locals{engine.LocalCache: false})
		case EnvTest:
			c.Send = false
		case EnvProduction, "":
		default:
			return fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, env)
		}
		return nil
	}
}
