package i18n

import (
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// Template local names installed by Registrar.
const (
	LocalT      = "t"
	LocalTn     = "tn"
	LocalLocale = "locale"
)

// DefaultLastLocaleField is the user field holding the last used locale.
const DefaultLastLocaleField = "last_locale"

// Registrar binds a catalog to render locals. It implements mailer.Localizer.
type Registrar struct {
	catalog         *I18n
	lastLocaleField string
}

// NewRegistrar creates a Registrar for catalog. An empty lastLocaleField
// means DefaultLastLocaleField.
func NewRegistrar(catalog *I18n, lastLocaleField string) *Registrar {
	if lastLocaleField == "" {
		lastLocaleField = DefaultLastLocaleField
	}
	return &Registrar{catalog: catalog, lastLocaleField: lastLocaleField}
}

// LastLocaleField returns the user field read for the preferred locale.
func (r *Registrar) LastLocaleField() string {
	return r.lastLocaleField
}

// Register installs the t and tn helpers into locals, bound to the default
// language until SetLocale is called on the returned context.
func (r *Registrar) Register(locals map[string]any) mailer.LocaleContext {
	c := &Context{catalog: r.catalog, locals: locals, lang: r.catalog.DefaultLanguage()}
	locals[LocalT] = c.T
	locals[LocalTn] = c.Tn
	return c
}

// Context is the per-render locale state. It is not safe for concurrent use;
// every render registers its own.
type Context struct {
	catalog *I18n
	locals  map[string]any
	lang    string
}

// SetLocale selects the closest available language for locale and stores
// it in the locals under "locale".
func (c *Context) SetLocale(locale string) {
	c.lang = c.catalog.Match(locale)
	c.locals[LocalLocale] = c.lang
}

// Locale returns the selected language.
func (c *Context) Locale() string {
	return c.lang
}

// T translates key. Placeholders are given as alternating name/value pairs
// or as M values.
func (c *Context) T(key string, args ...any) string {
	return c.catalog.T(c.lang, key, pairsToM(args))
}

// Tn translates the plural form of key for count n.
func (c *Context) Tn(key string, n int, args ...any) string {
	return c.catalog.Tn(c.lang, key, n, pairsToM(args))
}
