// Package inliner moves CSS from <style> blocks and linked stylesheets into
// style attributes, so HTML renders the same in mail clients that strip
// document-level styles.
//
// Declarations follow the CSS cascade: !important beats normal declarations,
// existing inline styles beat stylesheet rules, then specificity and source
// order decide. Rules that cannot be expressed inline (media queries,
// font faces, keyframes, dynamic pseudo-classes and pseudo-elements) are
// collected into a single <style> block when configured. Style blocks marked
// with data-embed are left untouched.
package inliner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Inliner inlines CSS into HTML documents. It is safe for concurrent use.
type Inliner struct {
	settings Settings
	client   *http.Client
	fsys     fs.FS
}

// Option configures an Inliner.
type Option func(*Inliner)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(in *Inliner) {
		in.settings = s
		in.settings.TableElements = slices.Clone(s.TableElements)
	}
}

// WithHTTPClient sets the client used to fetch remote stylesheets and images.
func WithHTTPClient(c *http.Client) Option {
	return func(in *Inliner) {
		if c != nil {
			in.client = c
		}
	}
}

// WithFS reads relative resources from fsys instead of the OS filesystem.
// WebResources.RelativeTo is then a directory inside fsys.
func WithFS(fsys fs.FS) Option {
	return func(in *Inliner) {
		in.fsys = fsys
	}
}

// New creates an Inliner with DefaultSettings.
func New(opts ...Option) *Inliner {
	in := &Inliner{
		settings: DefaultSettings(),
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

var std = New()

// Inline inlines CSS using an Inliner with default settings.
func Inline(ctx context.Context, src string, opts Options) (string, error) {
	return std.Inline(ctx, src, opts)
}

var documentTag = regexp.MustCompile(`(?i)<html[\s>]`)

// Inline returns src with its CSS moved into style attributes.
// Full documents are returned as documents, fragments as fragments.
// Input without stylesheets, extra CSS or inlinable resources is returned
// unchanged, so plain text passes through untouched.
func (in *Inliner) Inline(ctx context.Context, src string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", errors.Join(ErrInline, err)
	}
	if !hasStyling(doc, opts) {
		return src, nil
	}

	web := opts.WebResources
	if web.Links {
		if err := in.inlineLinks(ctx, doc, web.RelativeTo); err != nil {
			return "", errors.Join(ErrInline, err)
		}
	}
	if web.Images > 0 {
		if err := in.inlineImages(ctx, doc, web.RelativeTo, web.Images); err != nil {
			return "", errors.Join(ErrInline, err)
		}
	}

	styles := doc.Find("style").FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, embed := s.Attr("data-embed")
		return !embed
	})

	sheets := make([]string, 0, styles.Length()+1)
	styles.Each(func(_ int, s *goquery.Selection) {
		sheets = append(sheets, s.Text())
	})
	if opts.ExtraCSS != "" {
		sheets = append(sheets, opts.ExtraCSS)
	}

	sheet, err := parser.Parse(strings.Join(sheets, "\n"))
	if err != nil {
		return "", errors.Join(ErrInline, fmt.Errorf("parse stylesheet: %w", err))
	}

	kept, err := in.apply(doc.Nodes[0], sheet, opts)
	if err != nil {
		return "", errors.Join(ErrInline, err)
	}

	if in.settings.RemoveStyleTags {
		styles.Remove()
		if len(kept) > 0 {
			appendStyle(doc, strings.Join(kept, "\n"))
		}
	}

	out, err := render(doc, documentTag.MatchString(src))
	if err != nil {
		return "", errors.Join(ErrInline, err)
	}
	return out, nil
}

// hasStyling reports whether Inline has anything to apply to doc.
func hasStyling(doc *goquery.Document, opts Options) bool {
	if opts.ExtraCSS != "" || doc.Find("style").Length() > 0 {
		return true
	}
	if opts.WebResources.Links && doc.Find("link[href]").Length() > 0 {
		return true
	}
	return opts.WebResources.Images > 0 && doc.Find("img[src]").Length() > 0
}

// apply inlines every qualified rule of sheet below root and returns the
// rules that have to stay in a style block.
func (in *Inliner) apply(root *html.Node, sheet *css.Stylesheet, opts Options) ([]string, error) {
	var (
		kept    []string
		nodes   []*html.Node
		matched = map[*html.Node][]declaration{}
		order   int
	)

	for _, rule := range sheet.Rules {
		if rule.Kind == css.AtRule {
			if in.keepAtRule(rule) {
				kept = append(kept, rule.String())
			}
			continue
		}
		if len(rule.Declarations) == 0 {
			continue
		}

		for _, sel := range rule.Selectors {
			compiled, keep := compileSelector(sel)
			if compiled == nil {
				if keep && in.settings.PreservePseudos {
					kept = append(kept, sel+" { "+declarationsString(rule.Declarations)+" }")
				}
				continue
			}

			spec := compiled.Specificity()
			for _, n := range cascadia.QueryAll(root, compiled) {
				if !inlinable(n) {
					continue
				}
				if _, seen := matched[n]; !seen {
					nodes = append(nodes, n)
				}
				for _, d := range rule.Declarations {
					order++
					matched[n] = append(matched[n], declaration{
						property:  strings.ToLower(d.Property),
						value:     d.Value,
						important: d.Important,
						spec:      spec,
						order:     order,
					})
				}
			}
		}
	}

	for _, n := range nodes {
		decls := matched[n]
		if existing := strings.TrimSpace(getAttr(n, "style")); existing != "" {
			inline, err := parseInline(existing)
			if err != nil {
				return nil, err
			}
			for _, d := range inline {
				order++
				decls = append(decls, declaration{
					property:  strings.ToLower(d.Property),
					value:     d.Value,
					important: d.Important,
					inline:    true,
					order:     order,
				})
			}
		}

		winners := cascade(decls)
		setAttr(n, "style", styleString(winners, opts.PreserveImportant))
		in.applyAttributes(n, winners)
	}

	return kept, nil
}

func (in *Inliner) keepAtRule(rule *css.Rule) bool {
	switch strings.ToLower(rule.Name) {
	case "@media":
		return in.settings.PreserveMediaQueries
	case "@font-face":
		return in.settings.PreserveFontFaces
	case "@keyframes", "@-webkit-keyframes":
		return in.settings.PreserveKeyFrames
	}
	return false
}

var (
	sizedElements = []string{"TABLE", "TD", "TH", "IMG"}

	styleToAttribute = map[string]string{
		"background-color": "bgcolor",
		"text-align":       "align",
		"vertical-align":   "valign",
	}
)

// applyAttributes mirrors inlined styles into presentational attributes for
// clients that ignore CSS on tables and images.
func (in *Inliner) applyAttributes(n *html.Node, winners []declaration) {
	tag := strings.ToUpper(n.Data)
	sized := slices.Contains(sizedElements, tag)
	table := in.settings.ApplyAttributesTableElements &&
		slices.ContainsFunc(in.settings.TableElements, func(t string) bool { return strings.EqualFold(t, tag) })

	for _, d := range winners {
		switch {
		case d.property == "width" && sized && in.settings.ApplyWidthAttributes:
			if v, ok := dimension(d.value); ok {
				setAttrIfMissing(n, "width", v)
			}
		case d.property == "height" && sized && in.settings.ApplyHeightAttributes:
			if v, ok := dimension(d.value); ok {
				setAttrIfMissing(n, "height", v)
			}
		case table:
			if a, ok := styleToAttribute[d.property]; ok {
				setAttrIfMissing(n, a, d.value)
			}
		}
	}
}

var dimensionValue = regexp.MustCompile(`^(\d+(?:\.\d+)?)(px|%)?$`)

func dimension(v string) (string, bool) {
	m := dimensionValue.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return "", false
	}
	if m[2] == "%" {
		return m[1] + "%", true
	}
	return m[1], true
}

func parseInline(style string) ([]*css.Declaration, error) {
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil, fmt.Errorf("parse style attribute %q: %w", style, err)
	}
	return slices.DeleteFunc(decls, func(d *css.Declaration) bool { return d.Property == "" }), nil
}

func declarationsString(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " ")
}

func inlinable(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Head, atom.Style, atom.Script, atom.Link, atom.Meta, atom.Title, atom.Base:
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Head {
			return false
		}
	}
	return true
}

func appendStyle(doc *goquery.Document, sheet string) {
	if head := doc.Find("head"); head.Length() > 0 {
		head.AppendNodes(styleNode(sheet))
		return
	}
	doc.Find("body").PrependNodes(styleNode(sheet))
}

// render serialises doc. Fragments are rendered as the head's children
// followed by the body's content.
func render(doc *goquery.Document, document bool) (string, error) {
	if document {
		return doc.Html()
	}

	var b strings.Builder
	for _, n := range doc.Find("head").Children().Nodes {
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	b.WriteString(body)
	return b.String(), nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func setAttrIfMissing(n *html.Node, key, val string) {
	for _, a := range n.Attr {
		if a.Key == key {
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
