// Package i18n provides message catalogs for localized email templates.
//
// An I18n instance is immutable after New and safe for concurrent use.
// Translations are stored flattened ("welcome.subject") per language, with
// fallback from a regional tag to its base language and then to the default
// language. Plural forms follow CLDR cardinal rules.
//
//	catalog, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithYAMLDir(localesFS), // en/emails.yaml, de/emails.yaml
//	)
//
//	catalog.T("de", "emails.welcome.subject", i18n.M{"name": "Ada"})
//	catalog.Tn("en", "emails.digest.items", 3)
//
// # Templates
//
// Registrar plugs a catalog into the mail pipeline. For every render it
// installs helpers into the template locals, bound to the locale selected for
// that render:
//
//	{{call .t "emails.welcome.greeting" "name" .name}}
//	{{call .tn "emails.digest.items" .count}}
//	{{.locale}}
package i18n
