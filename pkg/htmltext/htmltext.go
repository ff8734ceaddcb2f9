// Package htmltext converts HTML message bodies into readable plain text.
//
// The conversion is structural: block elements become line breaks, list items
// get bullets or numbers, links keep their target in brackets and <pre>
// content is kept verbatim. Output is deterministic for a given input.
package htmltext

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options controls the conversion.
type Options struct {
	// WordWrap is the maximum line width. Zero disables wrapping.
	WordWrap int `yaml:"word_wrap"`
	// IgnoreImage drops images instead of rendering "alt [src]".
	IgnoreImage bool `yaml:"ignore_image"`
	// IgnoreHref renders link text only.
	IgnoreHref bool `yaml:"ignore_href"`
	// HideLinkHrefIfSameAsText renders only the text when it equals the href.
	HideLinkHrefIfSameAsText bool `yaml:"hide_link_href_if_same_as_text"`
	// UppercaseHeadings upper-cases h1-h6 content.
	UppercaseHeadings bool `yaml:"uppercase_headings"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		WordWrap:                 80,
		IgnoreImage:              true,
		HideLinkHrefIfSameAsText: true,
		UppercaseHeadings:        true,
	}
}

// FromString converts an HTML document or fragment to plain text.
func FromString(s string, opts Options) string {
	out, err := FromReader(strings.NewReader(s), opts)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return out
}

// FromReader parses HTML from r and converts it to plain text.
func FromReader(r io.Reader, opts Options) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("htmltext: parse: %w", err)
	}

	c := &converter{opts: opts}
	c.walk(doc)
	return finalize(c.buf.String(), opts.WordWrap), nil
}

// preMark prefixes lines that must survive whitespace cleanup and wrapping.
const preMark = "\x00"

const (
	hrWidth = 40
	cellSep = "  "
)

type list struct {
	ordered bool
	next    int
}

type converter struct {
	opts  Options
	buf   bytes.Buffer
	pre   int
	lists []*list
}

func (c *converter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data)
	case html.ElementNode:
		c.element(n)
	case html.DocumentNode:
		c.children(n)
	}
}

func (c *converter) children(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walk(ch)
	}
}

func (c *converter) element(n *html.Node) {
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Title, atom.Noscript, atom.Template:
		return

	case atom.Br:
		c.trimSpaces()
		c.buf.WriteByte('\n')
		if c.pre > 0 {
			c.buf.WriteString(preMark)
		}

	case atom.Hr:
		c.block(1)
		c.buf.WriteString(strings.Repeat("-", hrWidth))
		c.block(2)

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		c.block(2)
		s := strings.TrimSpace(c.sub(n))
		if c.opts.UppercaseHeadings {
			s = strings.ToUpper(s)
		}
		c.buf.WriteString(s)
		c.block(2)

	case atom.P, atom.Table, atom.Dl, atom.Address, atom.Figure:
		c.block(2)
		c.children(n)
		c.block(2)

	case atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer, atom.Main,
		atom.Nav, atom.Aside, atom.Center, atom.Tr, atom.Dt, atom.Dd, atom.Caption:
		c.block(1)
		c.children(n)
		c.block(1)

	case atom.Ul, atom.Ol:
		gap := 2
		if len(c.lists) > 0 {
			gap = 1
		}
		l := &list{ordered: n.DataAtom == atom.Ol, next: 1}
		if v, err := strconv.Atoi(attr(n, "start")); err == nil {
			l.next = v
		}
		c.block(gap)
		c.lists = append(c.lists, l)
		c.children(n)
		c.lists = c.lists[:len(c.lists)-1]
		c.block(gap)

	case atom.Li:
		c.block(1)
		c.buf.WriteString(c.marker())
		c.children(n)
		c.block(1)

	case atom.Td, atom.Th:
		c.trimSpaces()
		if b := c.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
			c.buf.WriteString(cellSep)
		}
		c.children(n)

	case atom.A:
		c.link(n)

	case atom.Img:
		c.image(n)

	case atom.Pre:
		c.block(2)
		c.pre++
		c.buf.WriteString(preMark)
		c.children(n)
		c.pre--
		c.block(2)

	case atom.Blockquote:
		c.block(2)
		s := strings.Trim(c.sub(n), "\n")
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			if rest, ok := strings.CutPrefix(line, preMark); ok {
				lines[i] = preMark + "> " + rest
				continue
			}
			lines[i] = strings.TrimRight("> "+line, " ")
		}
		c.buf.WriteString(strings.Join(lines, "\n"))
		c.block(2)

	default:
		c.children(n)
	}
}

func (c *converter) text(data string) {
	if c.pre > 0 {
		c.buf.WriteString(strings.ReplaceAll(data, "\n", "\n"+preMark))
		return
	}

	words := strings.Fields(data)
	if len(words) == 0 {
		if data != "" {
			c.space()
		}
		return
	}

	if first := data[0]; first == ' ' || first == '\t' || first == '\n' || first == '\r' || first == '\f' {
		c.space()
	}
	c.buf.WriteString(strings.Join(words, " "))
	if last := data[len(data)-1]; last == ' ' || last == '\t' || last == '\n' || last == '\r' || last == '\f' {
		c.buf.WriteByte(' ')
	}
}

// space writes a single separating space unless at the start of a line.
func (c *converter) space() {
	b := c.buf.Bytes()
	if len(b) == 0 {
		return
	}
	switch b[len(b)-1] {
	case ' ', '\n':
		return
	}
	c.buf.WriteByte(' ')
}

func (c *converter) trimSpaces() {
	b := c.buf.Bytes()
	n := len(b)
	for n > 0 && b[n-1] == ' ' {
		n--
	}
	c.buf.Truncate(n)
}

// block ensures the buffer ends with at least n line breaks.
func (c *converter) block(n int) {
	c.trimSpaces()
	b := c.buf.Bytes()
	if len(b) == 0 {
		return
	}
	have := 0
	for i := len(b) - 1; i >= 0 && b[i] == '\n'; i-- {
		have++
	}
	for ; have < n; have++ {
		c.buf.WriteByte('\n')
	}
}

// sub renders the children of n into a separate buffer.
func (c *converter) sub(n *html.Node) string {
	sc := &converter{opts: c.opts, pre: c.pre, lists: c.lists}
	sc.children(n)
	return sc.buf.String()
}

func (c *converter) marker() string {
	if len(c.lists) == 0 {
		return " * "
	}
	indent := strings.Repeat("  ", len(c.lists)-1)
	l := c.lists[len(c.lists)-1]
	if !l.ordered {
		return indent + " * "
	}
	m := indent + strconv.Itoa(l.next) + ". "
	l.next++
	return m
}

func (c *converter) link(n *html.Node) {
	href := strings.TrimSpace(attr(n, "href"))
	text := strings.TrimSpace(c.sub(n))

	switch {
	case c.opts.IgnoreHref || href == "" || strings.HasPrefix(href, "#"):
		c.inline(text)
	case text == "":
		c.inline("[" + href + "]")
	case c.opts.HideLinkHrefIfSameAsText && sameTarget(text, href):
		c.inline(text)
	default:
		c.inline(text + " [" + href + "]")
	}
}

func (c *converter) image(n *html.Node) {
	if c.opts.IgnoreImage {
		return
	}
	alt := strings.TrimSpace(attr(n, "alt"))
	src := strings.TrimSpace(attr(n, "src"))
	if strings.HasPrefix(src, "data:") {
		src = ""
	}

	switch {
	case src == "":
		c.inline(alt)
	case alt == "":
		c.inline("[" + src + "]")
	default:
		c.inline(alt + " [" + src + "]")
	}
}

func (c *converter) inline(s string) {
	if s == "" {
		return
	}
	c.buf.WriteString(s)
}

func sameTarget(text, href string) bool {
	norm := func(s string) string {
		s = strings.TrimPrefix(s, "mailto:")
		return strings.TrimSuffix(s, "/")
	}
	return norm(text) == norm(href)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

var blankRun = regexp.MustCompile(`\n{3,}`)

func finalize(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, preMark); ok {
			lines[i] = strings.ReplaceAll(rest, preMark, "")
			continue
		}
		line = strings.TrimRight(strings.ReplaceAll(line, preMark, ""), " \t")
		lines[i] = wrapLine(line, width)
	}

	out := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.Trim(out, "\n")
}
