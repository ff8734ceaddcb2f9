package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Plural form names used as the last segment of plural translation keys,
// e.g. "emails.digest.items.one".
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// PluralRule selects the plural form for a count.
type PluralRule func(n int) string

// CLDRPluralRule returns the CLDR cardinal plural rule for a language tag.
func CLDRPluralRule(tag language.Tag) PluralRule {
	return func(n int) string {
		if n < 0 {
			n = -n
		}
		return formName(plural.Cardinal.MatchPlural(tag, n%10_000_000, 0, 0, 0, 0))
	}
}

func formName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}

// fallbackForms lists the forms tried when a translation lacks form.
func fallbackForms(form string) []string {
	switch form {
	case PluralTwo:
		return []string{PluralFew, PluralMany, PluralOther}
	case PluralFew:
		return []string{PluralMany, PluralOther}
	case PluralOther:
		return nil
	default:
		return []string{PluralOther}
	}
}
