package mailer

import "fmt"

const (
	localUser   = "user"
	localLocale = "locale"
)

// localize registers the configured localizer against locals and activates
// the locale found in them. locals is modified in place.
func (m *Mailer) localize(locals Locals) error {
	if m.cfg.I18n == nil {
		return nil
	}

	field := m.cfg.LastLocaleField
	inner := m.cfg.I18n.LastLocaleField()
	if field != "" && inner != "" && field != inner {
		return fmt.Errorf("%w: mailer uses %q, i18n uses %q", ErrConfigMismatch, field, inner)
	}
	if field == "" {
		field = inner
	}

	lc := m.cfg.I18n.Register(locals)

	if field != "" {
		if last, ok := userField(locals[localUser], field); ok {
			locals[localLocale] = last
		}
	}
	if locale, ok := locals[localLocale].(string); ok && lc != nil {
		lc.SetLocale(locale)
	}
	return nil
}

// LocaleUser is implemented by user values that are not maps. Its
// LastLocale result is used whatever the configured field name is.
type LocaleUser interface {
	LastLocale() string
}

// userField reads the last-used locale off locals["user"]. Supported shapes
// are map[string]any, map[string]string and LocaleUser; anything else is
// ignored. An empty value never overrides locals["locale"].
func userField(user any, field string) (string, bool) {
	var v any
	switch u := user.(type) {
	case LocaleUser:
		v = u.LastLocale()
	case map[string]any:
		v = u[field]
	case map[string]string:
		v = u[field]
	default:
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
