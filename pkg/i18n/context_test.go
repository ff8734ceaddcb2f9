package i18n_test

import (
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/i18n"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

var _ mailer.Localizer = (*i18n.Registrar)(nil)

func TestRegistrar(t *testing.T) {
	t.Parallel()

	inst := newCatalog(t)

	t.Run("default last locale field", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "last_locale", i18n.NewRegistrar(inst, "").LastLocaleField())
		require.Equal(t, "lang", i18n.NewRegistrar(inst, "lang").LastLocaleField())
	})

	t.Run("helpers use default language until set", func(t *testing.T) {
		t.Parallel()

		locals := map[string]any{}
		lc := i18n.NewRegistrar(inst, "").Register(locals)

		tr, ok := locals[i18n.LocalT].(func(string, ...any) string)
		require.True(t, ok)
		require.Equal(t, "Hello Ada", tr("greeting", "name", "Ada"))
		require.NotContains(t, locals, i18n.LocalLocale)

		lc.SetLocale("de-DE")
		require.Equal(t, "de", locals[i18n.LocalLocale])
		require.Equal(t, "Hallo Ada", tr("greeting", i18n.M{"name": "Ada"}))
	})

	t.Run("template helpers", func(t *testing.T) {
		t.Parallel()

		locals := map[string]any{"name": "Ada", "count": 2}
		i18n.NewRegistrar(inst, "").Register(locals).SetLocale("pl")

		tmpl := template.Must(template.New("x").Parse(`{{call .t "greeting" "name" .name}} / {{call .tn "items" .count}} / {{.locale}}`))
		var sb strings.Builder
		require.NoError(t, tmpl.Execute(&sb, locals))
		require.Equal(t, "Hello Ada / 2 elementy / pl", sb.String())
	})
}
