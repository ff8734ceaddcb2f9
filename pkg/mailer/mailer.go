package mailer

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrymomot/mailtmpl/pkg/engine"
	"github.com/dmitrymomot/mailtmpl/pkg/inliner"
	"github.com/dmitrymomot/mailtmpl/pkg/logger"
)

// Mailer renders templated messages and hands them to a transport.
// It is safe for concurrent use.
type Mailer struct {
	transport Transport
	engines   *engine.Registry
	inliner   *inliner.Inliner
	log       *slog.Logger
	cfg       Config
	mu        sync.RWMutex
}

// New creates a Mailer from DefaultConfig with opts applied.
// Every engine named by the extension map, and the engine of the default
// extension, must be registered; otherwise New fails with ErrEngineNotFound.
func New(opts ...Option) (*Mailer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	cfg = cfg.clone()

	if cfg.GetPath == nil {
		cfg.GetPath = DefaultGetPath
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNope()
	}

	inlinerOpts := []inliner.Option{inliner.WithSettings(cfg.JuiceSettings)}
	if cfg.Views.FS != nil {
		inlinerOpts = append(inlinerOpts, inliner.WithFS(cfg.Views.FS))
	} else {
		cfg.Views.FS = os.DirFS(cfg.Views.Root)
	}

	engines := cfg.Views.Options.Engines
	if engines == nil {
		engines = engine.Default()
	}
	cfg.Views.Options.Engines = engines

	m := &Mailer{
		transport: cfg.Transport,
		engines:   engines,
		inliner:   inliner.New(inlinerOpts...),
		log:       cfg.Logger,
		cfg:       cfg,
	}
	if cfg.Render == nil {
		if err := m.validateEngines(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Mailer) validateEngines() error {
	opts := m.cfg.Views.Options
	for ext, name := range opts.Map {
		if _, ok := m.engines.Lookup(name); !ok {
			return fmt.Errorf("%w: %q (extension %q)", ErrEngineNotFound, name, ext)
		}
	}

	if opts.Extension == "html" && len(opts.Map) == 0 {
		return nil
	}
	name := opts.Extension
	if mapped, ok := opts.Map[opts.Extension]; ok {
		name = mapped
	}
	if _, ok := m.engines.Lookup(name); !ok {
		return fmt.Errorf("%w: %q (extension %q)", ErrEngineNotFound, name, opts.Extension)
	}
	return nil
}

// Config returns a copy of the active configuration.
func (m *Mailer) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg := m.cfg.clone()
	cfg.Transport = m.transport
	return cfg
}

// Transport returns the transport Send delivers through.
func (m *Mailer) Transport() Transport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transport
}

// useDryRun switches the Mailer to a JSONTransport unless it already uses
// one. The switch applies to every later Send on this Mailer.
func (m *Mailer) useDryRun() Transport {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transport.(*JSONTransport); !ok {
		m.transport = NewJSONTransport()
	}
	return m.transport
}
