package i18n_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/i18n"
)

func newCatalog(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()

	base := []i18n.Option{
		i18n.WithTranslations("en", map[string]any{
			"greeting": "Hello {{name}}",
			"welcome": map[string]any{
				"subject": "Welcome",
			},
			"items": map[string]any{
				"zero":  "No items",
				"one":   "{{count}} item",
				"other": "{{count}} items",
			},
			"only_en": "English only",
		}),
		i18n.WithTranslations("de", map[string]any{
			"greeting": "Hallo {{name}}",
			"welcome":  map[string]string{"subject": "Willkommen"},
		}),
		i18n.WithTranslations("pl", map[string]any{
			"items": map[string]any{
				"one":  "{{count}} element",
				"few":  "{{count}} elementy",
				"many": "{{count}} elementów",
			},
		}),
	}

	inst, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return inst
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New()
		require.NoError(t, err)
		require.Equal(t, "en", inst.DefaultLanguage())
		require.Equal(t, []string{"en"}, inst.Languages())
	})

	t.Run("empty default language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithDefaultLanguage(""))
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("invalid language tag", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithLanguages("not a tag!"))
		require.ErrorIs(t, err, i18n.ErrInvalidTag)
	})

	t.Run("languages from translations", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"en", "de", "pl"}, newCatalog(t).Languages())
	})

	t.Run("explicit languages", func(t *testing.T) {
		t.Parallel()
		inst := newCatalog(t, i18n.WithDefaultLanguage("de"), i18n.WithLanguages("fr", "en", "de"))
		require.Equal(t, []string{"de", "en", "fr"}, inst.Languages())
	})

	t.Run("nil plural rule", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithPluralRule("en", nil))
		require.ErrorIs(t, err, i18n.ErrNilPluralRule)
	})
}

func TestT(t *testing.T) {
	t.Parallel()

	inst := newCatalog(t)

	tests := []struct {
		name string
		lang string
		key  string
		args []i18n.M
		want string
	}{
		{name: "exact language", lang: "de", key: "welcome.subject", want: "Willkommen"},
		{name: "placeholders", lang: "de", key: "greeting", args: []i18n.M{{"name": "Ada"}}, want: "Hallo Ada"},
		{name: "base language", lang: "de-AT", key: "welcome.subject", want: "Willkommen"},
		{name: "default language", lang: "de", key: "only_en", want: "English only"},
		{name: "unknown language", lang: "fr", key: "welcome.subject", want: "Welcome"},
		{name: "missing key", lang: "en", key: "nope", want: "nope"},
		{name: "merged placeholders", lang: "en", key: "greeting", args: []i18n.M{{"name": "A"}, {"name": "B"}}, want: "Hello B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, inst.T(tt.lang, tt.key, tt.args...))
		})
	}
}

func TestTn(t *testing.T) {
	t.Parallel()

	inst := newCatalog(t)

	tests := []struct {
		lang string
		n    int
		want string
	}{
		{"en", 0, "No items"},
		{"en", 1, "1 item"},
		{"en", 5, "5 items"},
		{"pl", 1, "1 element"},
		{"pl", 2, "2 elementy"},
		{"pl", 5, "5 elementów"},
		{"pl", 22, "22 elementy"},
		{"pl", 12, "12 elementów"},
		{"de", 3, "3 items"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, inst.Tn(tt.lang, "items", tt.n))
		})
	}

	require.Equal(t, "missing", inst.Tn("en", "missing", 2))
}

func TestTn_CustomRule(t *testing.T) {
	t.Parallel()

	inst := newCatalog(t, i18n.WithPluralRule("en", func(int) string { return i18n.PluralOne }))
	require.Equal(t, "7 item", inst.Tn("en", "items", 7))
}

func TestMissingKeyHandler(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)
	inst := newCatalog(t, i18n.WithMissingKeyHandler(func(lang, key string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, lang+":"+key)
	}))

	inst.T("de", "welcome.subject")
	inst.T("de", "nope")
	inst.Tn("pl", "nothing", 3)

	require.Equal(t, []string{"de:nope", "pl:nothing"}, seen)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	inst := newCatalog(t, i18n.WithLanguages("en", "de", "pl", "pt"))

	tests := []struct {
		locale string
		want   string
	}{
		{"de", "de"},
		{"de-AT", "de"},
		{"pt_BR", "pt"},
		{"PL", "pl"},
		{"fr", "en"},
		{"", "en"},
		{"!!", "en"},
		{"en-US,de;q=0.9", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, inst.Match(tt.locale))
		})
	}
}

func TestCLDRPluralRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		n    int
		want string
	}{
		{"en", 0, i18n.PluralOther},
		{"en", 1, i18n.PluralOne},
		{"en", -1, i18n.PluralOne},
		{"en", 2, i18n.PluralOther},
		{"fr", 0, i18n.PluralOne},
		{"fr", 2, i18n.PluralOther},
		{"ru", 3, i18n.PluralFew},
		{"ru", 11, i18n.PluralMany},
		{"ar", 0, i18n.PluralZero},
		{"ar", 2, i18n.PluralTwo},
		{"ja", 1, i18n.PluralOther},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			rule := i18n.CLDRPluralRule(mustTag(t, tt.lang))
			require.Equal(t, tt.want, rule(tt.n))
		})
	}
}
