package mailer

import (
	"maps"
	"slices"
)

// mergeLocals returns a new map holding defaults overlaid by over.
// Nested map[string]any values merge recursively; any other value, slices
// included, replaces the default wholesale. A nil value in over never erases
// a default. Neither argument is modified.
func mergeLocals(defaults, over Locals) Locals {
	out := make(Locals, len(defaults)+len(over))
	for k, v := range defaults {
		out[k] = cloneValue(v)
	}
	for k, v := range over {
		if v == nil {
			if _, ok := out[k]; ok {
				continue
			}
		}
		dst, dok := out[k].(map[string]any)
		src, sok := v.(map[string]any)
		if dok && sok {
			out[k] = mergeLocals(dst, src)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// cloneLocals copies locals so nested maps can be merged into without
// touching the original.
func cloneLocals(l Locals) Locals {
	if l == nil {
		return nil
	}
	return mergeLocals(nil, l)
}

func cloneValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		return mergeLocals(nil, m)
	}
	return v
}

// mergeMessage overlays over on defaults field by field. Non-empty strings
// and non-empty slices in over win; header and tag maps merge key by key.
// Attachments are not merged.
func mergeMessage(over, defaults Message) Message {
	out := cloneMessage(defaults)
	out.Attachments = nil

	out.From = pick(over.From, out.From)
	out.ReplyTo = pick(over.ReplyTo, out.ReplyTo)
	out.Subject = pick(over.Subject, out.Subject)
	out.HTML = pick(over.HTML, out.HTML)
	out.Text = pick(over.Text, out.Text)
	out.To = pickSlice(over.To, out.To)
	out.CC = pickSlice(over.CC, out.CC)
	out.BCC = pickSlice(over.BCC, out.BCC)

	if len(over.Headers) > 0 {
		if out.Headers == nil {
			out.Headers = make(map[string]string, len(over.Headers))
		}
		maps.Copy(out.Headers, over.Headers)
	}
	if len(over.Tags) > 0 {
		if out.Tags == nil {
			out.Tags = make(Tags, len(over.Tags))
		}
		maps.Copy(out.Tags, over.Tags)
	}
	return out
}

// fillMessage sets the subject, html and text of msg from src where msg has none.
func fillMessage(msg, src *Message) {
	msg.Subject = pick(msg.Subject, src.Subject)
	msg.HTML = pick(msg.HTML, src.HTML)
	msg.Text = pick(msg.Text, src.Text)
}

func pick(first, second string) string {
	if first != "" {
		return first
	}
	return second
}

func pickSlice(first, second []string) []string {
	if len(first) > 0 {
		return slices.Clone(first)
	}
	return second
}
