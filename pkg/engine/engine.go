package engine

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"reflect"
	"strings"
	"sync"
)

// View identifies a resolved template file.
type View struct {
	FS   fs.FS  // filesystem the template lives in
	Name string // slash-separated path inside FS
	Path string // root-qualified path, used for cache keys and messages
}

// Ext returns the view's file extension without the leading dot.
func (v View) Ext() string {
	return strings.TrimPrefix(path.Ext(v.Name), ".")
}

// Stem returns the base file name up to its first dot ("html" for "welcome/html.tmpl").
func (v View) Stem() string {
	base := path.Base(v.Name)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// IsHTML reports whether the view produces an HTML body rather than a subject or text.
func (v View) IsHTML() bool {
	switch v.Ext() {
	case "gohtml", "html", "htm":
		return true
	}
	return v.Stem() == "html"
}

// key identifies the view in the parse cache. Two filesystems mounted under
// the same root never share entries.
func (v View) key() string {
	return fsIdentity(v.FS) + "|" + v.label()
}

// label names the view in error messages.
func (v View) label() string {
	if v.Path != "" {
		return v.Path
	}
	return v.Name
}

// fsIdentity names a filesystem value. Reference kinds such as fstest.MapFS
// are told apart by address; value kinds such as os.DirFS by content.
func fsIdentity(fsys fs.FS) string {
	if fsys == nil {
		return ""
	}
	rv := reflect.ValueOf(fsys)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.UnsafePointer:
		return fmt.Sprintf("%T@%x", fsys, rv.Pointer())
	default:
		return fmt.Sprintf("%T:%v", fsys, fsys)
	}
}

// Func is the normalised engine signature the pipeline invokes.
type Func func(ctx context.Context, view View, locals map[string]any) (string, error)

// SyncFunc is a synchronous engine that ignores cancellation.
type SyncFunc func(view View, locals map[string]any) (string, error)

// CallbackFunc is an engine that reports its result through done, possibly from
// another goroutine.
type CallbackFunc func(view View, locals map[string]any, done func(string, error))

// FromSync adapts a SyncFunc to Func.
func FromSync(fn SyncFunc) Func {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, view View, locals map[string]any) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return fn(view, locals)
	}
}

// FromCallback adapts a CallbackFunc to Func.
// Only the first call to done is observed; the returned Func stops waiting
// when ctx is cancelled.
func FromCallback(fn CallbackFunc) Func {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, view View, locals map[string]any) (string, error) {
		type result struct {
			out string
			err error
		}

		ch := make(chan result, 1)
		var once sync.Once
		fn(view, locals, func(out string, err error) {
			once.Do(func() { ch <- result{out: out, err: err} })
		})

		select {
		case r := <-ch:
			return r.out, r.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}
