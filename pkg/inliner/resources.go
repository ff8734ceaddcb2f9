package inliner

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const maxResourceSize = 5 << 20

// inlineLinks replaces <link rel="stylesheet"> elements with <style> blocks
// holding the fetched stylesheet. Links marked data-inline-ignore are kept.
func (in *Inliner) inlineLinks(ctx context.Context, doc *goquery.Document, relativeTo string) error {
	var errs []error

	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		if !strings.EqualFold(strings.TrimSpace(rel), "stylesheet") {
			return
		}
		if _, ignore := s.Attr("data-inline-ignore"); ignore {
			return
		}

		href, _ := s.Attr("href")
		data, err := in.load(ctx, href, relativeTo)
		if err != nil {
			errs = append(errs, err)
			return
		}

		sheet := string(data)
		if media, ok := s.Attr("media"); ok && media != "" && !strings.EqualFold(media, "all") {
			sheet = "@media " + media + " {\n" + sheet + "\n}"
		}
		s.ReplaceWithNodes(styleNode(sheet))
	})

	return errors.Join(errs...)
}

// inlineImages embeds relative images no larger than limitKB as data URIs.
func (in *Inliner) inlineImages(ctx context.Context, doc *goquery.Document, relativeTo string, limitKB int) error {
	var errs []error

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		if _, ignore := s.Attr("data-inline-ignore"); ignore {
			return
		}
		src, _ := s.Attr("src")
		if !isRelative(src) {
			return
		}

		data, err := in.load(ctx, src, relativeTo)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if len(data) > limitKB*1024 {
			return
		}
		s.SetAttr("src", dataURI(src, data))
	})

	return errors.Join(errs...)
}

// load reads ref from the network or the filesystem.
func (in *Inliner) load(ctx context.Context, ref, relativeTo string) ([]byte, error) {
	target, remote, err := resolve(ref, relativeTo)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, ref, err)
	}
	if remote {
		return in.get(ctx, target)
	}
	return in.readLocal(relativeTo, target)
}

func (in *Inliner) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, target, err)
	}

	resp, err := in.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrFetch, target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, target, err)
	}
	return data, nil
}

func (in *Inliner) readLocal(relativeTo, name string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if in.fsys != nil {
		data, err = fs.ReadFile(in.fsys, path.Join(clean(relativeTo), clean(name)))
	} else {
		root := relativeTo
		if root == "" {
			root = "."
		}
		data, err = fs.ReadFile(os.DirFS(root), clean(name))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, name, err)
	}
	return data, nil
}

// resolve turns ref into an absolute URL (remote=true) or a slash-separated
// path relative to relativeTo.
func resolve(ref, relativeTo string) (target string, remote bool, err error) {
	if strings.HasPrefix(ref, "//") {
		ref = "https:" + ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", false, err
	}

	switch u.Scheme {
	case "http", "https":
		return u.String(), true, nil
	case "":
	default:
		return "", false, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if base, err := url.Parse(relativeTo); err == nil && (base.Scheme == "http" || base.Scheme == "https") {
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		return base.ResolveReference(u).String(), true, nil
	}

	return u.Path, false, nil
}

// clean makes name a valid fs.FS path that cannot escape the root.
func clean(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

func isRelative(src string) bool {
	if src == "" || strings.HasPrefix(src, "//") {
		return false
	}
	u, err := url.Parse(src)
	return err == nil && u.Scheme == ""
}

func dataURI(name string, data []byte) string {
	typ := mime.TypeByExtension(path.Ext(name))
	if typ == "" {
		typ = http.DetectContentType(data)
	}
	return "data:" + typ + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func styleNode(sheet string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: sheet})
	return n
}
