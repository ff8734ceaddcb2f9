package inliner

import (
	"dario.cat/mergo"
)

// Settings are the inliner-wide switches applied to every document.
type Settings struct {
	// TableElements lists the tags that receive HTML attributes derived from
	// their inlined styles (bgcolor, align, valign, background).
	TableElements []string `yaml:"table_elements"`

	ApplyWidthAttributes         bool `yaml:"apply_width_attributes"`
	ApplyHeightAttributes        bool `yaml:"apply_height_attributes"`
	ApplyAttributesTableElements bool `yaml:"apply_attributes_table_elements"`

	// RemoveStyleTags drops inlined <style> blocks. Rules that cannot be
	// inlined are kept in a single <style> block in the head.
	RemoveStyleTags bool `yaml:"remove_style_tags"`

	PreserveMediaQueries bool `yaml:"preserve_media_queries"`
	PreserveFontFaces    bool `yaml:"preserve_font_faces"`
	PreserveKeyFrames    bool `yaml:"preserve_key_frames"`
	PreservePseudos      bool `yaml:"preserve_pseudos"`
}

// DefaultSettings returns the settings used by New.
func DefaultSettings() Settings {
	return Settings{
		TableElements:                []string{"TABLE"},
		ApplyWidthAttributes:         true,
		ApplyHeightAttributes:        true,
		ApplyAttributesTableElements: true,
		RemoveStyleTags:              true,
		PreserveMediaQueries:         true,
		PreserveFontFaces:            true,
		PreserveKeyFrames:            true,
		PreservePseudos:              true,
	}
}

// WebResources controls loading of linked stylesheets and images.
type WebResources struct {
	// RelativeTo is the directory or base URL relative references resolve against.
	RelativeTo string `yaml:"relative_to"`
	// Links enables inlining of <link rel="stylesheet"> elements.
	Links bool `yaml:"links"`
	// Images is the size limit in KB for relative images embedded as data
	// URIs. Zero disables image inlining.
	Images int `yaml:"images"`
}

// Options are the per-document inlining options.
type Options struct {
	// PreserveImportant keeps the !important marker on inlined declarations.
	PreserveImportant bool `yaml:"preserve_important"`
	// ExtraCSS is applied after the document's own stylesheets.
	ExtraCSS     string       `yaml:"extra_css"`
	WebResources WebResources `yaml:"web_resources"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		PreserveImportant: true,
		WebResources: WebResources{
			RelativeTo: "build",
			Links:      true,
		},
	}
}

// Merge returns o overridden by every non-zero field of over.
// Boolean fields can only be switched on by over.
func (o Options) Merge(over Options) (Options, error) {
	out := o
	if err := mergo.Merge(&out, over, mergo.WithOverride); err != nil {
		return o, err
	}
	return out, nil
}
