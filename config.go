package mailtmpl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailtmpl/pkg/i18n"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer/transport"
	"github.com/dmitrymomot/mailtmpl/pkg/preview"
)

// ErrConfigDecode is returned when a config document cannot be parsed.
var ErrConfigDecode = errors.New("failed to decode mail config")

// Config is the declarative form of the mailer options, usually loaded
// from YAML. Pointer booleans distinguish "unset" from false so that
// environment defaults survive.
type Config struct {
	Views           ViewsConfig      `yaml:"views"`
	Message         MessageConfig    `yaml:"message"`
	I18n            I18nConfig       `yaml:"i18n"`
	Preview         PreviewConfig    `yaml:"preview"`
	Transport       transport.Config `yaml:"transport"`
	Send            *bool            `yaml:"send"`
	Juice           *bool            `yaml:"juice"`
	HTMLToText      *bool            `yaml:"html_to_text"`
	Environment     string           `yaml:"environment" env:"APP_ENV" envDefault:"production"`
	SubjectPrefix   string           `yaml:"subject_prefix"`
	LastLocaleField string           `yaml:"last_locale_field"`
	TextOnly        bool             `yaml:"text_only"`
}

// ViewsConfig locates templates.
type ViewsConfig struct {
	Map       map[string]string `yaml:"map"`
	Locals    map[string]any    `yaml:"locals"`
	Root      string            `yaml:"root"`
	Extension string            `yaml:"extension"`
}

// MessageConfig holds default message fields.
type MessageConfig struct {
	Headers map[string]string `yaml:"headers"`
	From    string            `yaml:"from"`
	ReplyTo string            `yaml:"reply_to"`
	CC      []string          `yaml:"cc"`
	BCC     []string          `yaml:"bcc"`
}

// I18nConfig loads a translation catalog from a directory of YAML or JSON
// files, one per language.
type I18nConfig struct {
	Dir             string   `yaml:"dir"`
	DefaultLanguage string   `yaml:"default_language"`
	Languages       []string `yaml:"languages"`
}

// PreviewConfig writes an HTML file per message. Enabled defaults to true
// in development.
type PreviewConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LoadConfig decodes a YAML document. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, errors.Join(ErrConfigDecode, err)
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes the YAML file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open mail config: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}

// Options translates the config into mailer options. Environment
// defaults are applied first so explicit values override them.
func (c Config) Options(log *slog.Logger) ([]Option, error) {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	opts := []Option{mailer.WithEnvironment(env)}

	if log != nil {
		opts = append(opts, mailer.WithLogger(log))
	}

	if c.Views.Root != "" {
		opts = append(opts, mailer.WithViewsRoot(c.Views.Root))
	}
	if c.Views.Extension != "" {
		opts = append(opts, mailer.WithExtension(c.Views.Extension))
	}
	if c.Views.Map != nil {
		opts = append(opts, mailer.WithEngineMap(c.Views.Map))
	}
	if len(c.Views.Locals) > 0 {
		opts = append(opts, mailer.WithLocals(c.Views.Locals))
	}

	opts = append(opts, mailer.WithMessage(c.Message.message()))

	if c.SubjectPrefix != "" {
		opts = append(opts, mailer.WithSubjectPrefix(c.SubjectPrefix))
	}
	if c.TextOnly {
		opts = append(opts, mailer.WithTextOnly(true))
	}
	if c.LastLocaleField != "" {
		opts = append(opts, mailer.WithLastLocaleField(c.LastLocaleField))
	}
	if c.Juice != nil {
		opts = append(opts, mailer.WithJuice(*c.Juice))
	}
	if c.HTMLToText != nil && !*c.HTMLToText {
		opts = append(opts, mailer.WithoutHTMLToText())
	}

	t, err := transport.New(c.Transport, log)
	if err != nil {
		return nil, err
	}
	opts = append(opts, mailer.WithTransport(t))

	if c.Send != nil {
		opts = append(opts, mailer.WithSend(*c.Send))
	}

	if c.I18n.Dir != "" {
		catalog, err := c.I18n.catalog()
		if err != nil {
			return nil, err
		}
		opts = append(opts, mailer.WithI18n(i18n.NewRegistrar(catalog, c.LastLocaleField)))
	}

	if c.previewEnabled(env) {
		popts := []preview.FileOption{}
		if c.Preview.Dir != "" {
			popts = append(popts, preview.WithDir(c.Preview.Dir))
		}
		if log != nil {
			popts = append(popts, preview.WithLogger(log))
		}
		opts = append(opts, mailer.WithPreview(preview.NewFilePreviewer(popts...)))
	}

	return opts, nil
}

// FromConfig builds a Mailer from cfg. Extra options are applied last.
func FromConfig(cfg Config, log *slog.Logger, extra ...Option) (*Mailer, error) {
	opts, err := cfg.Options(log)
	if err != nil {
		return nil, err
	}
	return mailer.New(append(opts, extra...)...)
}

func (c Config) previewEnabled(env string) bool {
	if c.Preview.Enabled != nil {
		return *c.Preview.Enabled
	}
	return env == EnvDevelopment
}

func (m MessageConfig) message() Message {
	msg := Message{
		From:    m.From,
		ReplyTo: m.ReplyTo,
		CC:      m.CC,
		BCC:     m.BCC,
	}
	if len(m.Headers) > 0 {
		msg.Headers = m.Headers
	}
	return msg
}

func (c I18nConfig) catalog() (*i18n.I18n, error) {
	fsys := os.DirFS(c.Dir)
	opts := []i18n.Option{i18n.WithYAMLDir(fsys), i18n.WithJSONDir(fsys)}
	if c.DefaultLanguage != "" {
		opts = append(opts, i18n.WithDefaultLanguage(c.DefaultLanguage))
	}
	if len(c.Languages) > 0 {
		opts = append(opts, i18n.WithLanguages(c.Languages...))
	}
	catalog, err := i18n.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("load translations from %q: %w", c.Dir, err)
	}
	return catalog, nil
}
