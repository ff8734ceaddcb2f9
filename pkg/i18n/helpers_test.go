package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func mustTag(t *testing.T, s string) language.Tag {
	t.Helper()
	tag, err := language.Parse(s)
	require.NoError(t, err)
	return tag
}
