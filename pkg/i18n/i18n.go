package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

// I18n is an immutable message catalog with plural support.
type I18n struct {
	// Flattened translations keyed by "lang:key.path".
	translations map[string]string

	pluralRules       map[string]PluralRule
	missingKeyHandler func(lang, key string)

	defaultLang string
	explicit    []string
	seen        map[string]struct{}

	languages []string
	matcher   language.Matcher
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a catalog. All configuration happens here; the result is
// read-only and safe for concurrent use.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		pluralRules:  make(map[string]PluralRule),
		seen:         make(map[string]struct{}),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	i.languages = i.buildLanguagesList()

	tags := make([]language.Tag, 0, len(i.languages))
	for _, lang := range i.languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTag, lang)
		}
		tags = append(tags, tag)
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages restricts the languages a locale can resolve to.
// Without it, every language with translations is available.
// The default language is always available and listed first.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, lang := range langs {
			if lang != "" {
				i.explicit = append(i.explicit, lang)
			}
		}
		return nil
	}
}

// WithTranslations adds translations for a language. Nested maps are
// flattened into dot-separated keys.
func WithTranslations(lang string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.add(lang, "", translations)
		return nil
	}
}

// WithPluralRule overrides the CLDR plural rule for a language.
func WithPluralRule(lang string, rule PluralRule) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		i.pluralRules[lang] = rule
		return nil
	}
}

// WithMissingKeyHandler sets a function called when a key is missing in the
// requested language and every fallback.
func WithMissingKeyHandler(handler func(lang, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T returns the translation of key for lang with placeholders replaced.
// Lookup falls back to the base language ("de" for "de-AT"), then the
// default language. A missing key is returned as is.
func (i *I18n) T(lang, key string, placeholders ...M) string {
	if s, ok := i.lookup(lang, key); ok {
		return ReplacePlaceholders(s, merge(nil, placeholders))
	}
	i.missing(lang, key)
	return key
}

// Tn returns the plural form of key for count n. The count is available as
// the {{count}} placeholder. An explicit "zero" form is preferred for n == 0
// even in languages whose rules have no zero category.
func (i *I18n) Tn(lang, key string, n int, placeholders ...M) string {
	form := i.pluralRule(lang)(n)

	candidates := make([]string, 0, 5)
	if n == 0 && form != PluralZero {
		candidates = append(candidates, key+"."+PluralZero)
	}
	candidates = append(candidates, key+"."+form)
	for _, f := range fallbackForms(form) {
		candidates = append(candidates, key+"."+f)
	}

	for _, l := range i.chain(lang) {
		for _, c := range candidates {
			if s, ok := i.translations[buildKey(l, c)]; ok {
				return ReplacePlaceholders(s, merge(M{"count": n}, placeholders))
			}
		}
	}

	i.missing(lang, key)
	return key
}

// Match resolves a locale or Accept-Language value to the closest available
// language. Underscores are accepted as separators ("pt_BR").
func (i *I18n) Match(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return i.defaultLang
	}

	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}

	_, idx, confidence := i.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(i.languages) {
		return i.defaultLang
	}
	return i.languages[idx]
}

// Languages returns the available languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) add(lang, prefix string, translations map[string]any) {
	if len(translations) == 0 {
		return
	}
	for key, value := range flattenTranslations(translations, prefix) {
		i.translations[buildKey(lang, key)] = value
	}
	i.seen[lang] = struct{}{}
}

func (i *I18n) lookup(lang, key string) (string, bool) {
	for _, l := range i.chain(lang) {
		if s, ok := i.translations[buildKey(l, key)]; ok {
			return s, true
		}
	}
	return "", false
}

// chain returns lang, its base language and the default language, deduplicated.
func (i *I18n) chain(lang string) []string {
	out := make([]string, 0, 3)
	for _, l := range []string{lang, baseLanguage(lang), i.defaultLang} {
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

func (i *I18n) pluralRule(lang string) PluralRule {
	for _, l := range i.chain(lang) {
		if rule, ok := i.pluralRules[l]; ok {
			return rule
		}
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag, _ = language.Parse(i.defaultLang)
	}
	return CLDRPluralRule(tag)
}

func (i *I18n) missing(lang, key string) {
	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, key)
	}
}

func (i *I18n) buildLanguagesList() []string {
	set := make(map[string]struct{})
	if len(i.explicit) > 0 {
		for _, l := range i.explicit {
			set[l] = struct{}{}
		}
	} else {
		maps.Copy(set, i.seen)
	}
	delete(set, i.defaultLang)

	return append([]string{i.defaultLang}, slices.Sorted(maps.Keys(set))...)
}

func buildKey(lang, key string) string {
	return lang + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func merge(base M, placeholders []M) M {
	if len(placeholders) == 0 {
		return base
	}
	out := make(M, len(base))
	maps.Copy(out, base)
	for _, p := range placeholders {
		maps.Copy(out, p)
	}
	return out
}

// baseLanguage strips the region from a language tag ("en-US" to "en").
func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
