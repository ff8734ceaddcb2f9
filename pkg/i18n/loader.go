package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithJSONDir loads translations from JSON files in fsys.
//
// Two layouts are accepted and may be mixed:
//
//	en.json            keys used as is
//	de/emails.json     keys prefixed with "emails."
func WithJSONDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		return loadDir(i, fsys, []string{".json"}, json.Unmarshal)
	}
}

// WithYAMLDir loads translations from .yaml and .yml files in fsys, using
// the same layouts as WithJSONDir.
func WithYAMLDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		return loadDir(i, fsys, []string{".yaml", ".yml"}, yaml.Unmarshal)
	}
}

func loadDir(i *I18n, fsys fs.FS, exts []string, unmarshal func([]byte, any) error) error {
	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(filePath))
		if !slices.Contains(exts, ext) {
			return nil
		}

		stem := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
		lang, namespace := stem, ""
		if dir := path.Dir(filePath); dir != "." {
			if strings.Contains(dir, "/") {
				return fmt.Errorf("%w: %q is nested too deeply", ErrInvalidFile, filePath)
			}
			lang, namespace = dir, stem
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var translations map[string]any
		if err := unmarshal(data, &translations); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		i.add(lang, namespace, translations)
		return nil
	})
}
