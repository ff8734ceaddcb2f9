package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/i18n"
)

func TestWithJSONDir(t *testing.T) {
	t.Parallel()

	t.Run("flat and namespaced files", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"en.json":        {Data: []byte(`{"welcome": {"subject": "Welcome"}}`)},
			"de/emails.json": {Data: []byte(`{"welcome": {"subject": "Willkommen"}}`)},
			"README.md":      {Data: []byte("ignored")},
		}

		inst, err := i18n.New(i18n.WithJSONDir(fsys))
		require.NoError(t, err)
		require.Equal(t, "Welcome", inst.T("en", "welcome.subject"))
		require.Equal(t, "Willkommen", inst.T("de", "emails.welcome.subject"))
		require.Equal(t, []string{"en", "de"}, inst.Languages())
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithJSONDir(fstest.MapFS{"en.json": {Data: []byte(`{`)}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("nested too deeply", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.New(i18n.WithJSONDir(fstest.MapFS{"en/a/b.json": {Data: []byte(`{}`)}}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en/emails.yaml": {Data: []byte("digest:\n  items:\n    one: \"{{count}} update\"\n    other: \"{{count}} updates\"\n")},
		"de/emails.yml":  {Data: []byte("digest:\n  items:\n    one: \"{{count}} Neuigkeit\"\n    other: \"{{count}} Neuigkeiten\"\n")},
	}

	inst, err := i18n.New(i18n.WithYAMLDir(fsys))
	require.NoError(t, err)
	require.Equal(t, "1 update", inst.Tn("en", "emails.digest.items", 1))
	require.Equal(t, "4 Neuigkeiten", inst.Tn("de", "emails.digest.items", 4))
}
