// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package render holds the display-time wrapper applied to builder bodies.
package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Wrapper puts rendered builder content inside a single container element so
// that paragraph insertion running after it leaves the builder markup alone.
// It is stateless; nothing it produces is persisted.
type Wrapper struct {
	open  string
	close string
}

// NewWrapper returns a wrapper whose container carries class. An empty class
// renders the container without a class attribute.
func NewWrapper(class string) *Wrapper {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Div.String(),
		DataAtom: atom.Div,
	}
	if class != "" {
		container.Attr = []html.Attribute{{Key: "class", Val: class}}
	}

	var b strings.Builder
	// Rendering into a strings.Builder cannot fail.
	_ = html.Render(&b, container)

	closeTag := "</" + container.Data + ">"
	return &Wrapper{
		open:  strings.TrimSuffix(b.String(), closeTag),
		close: closeTag,
	}
}

// Wrap returns content inside the container. content is not escaped.
func (w *Wrapper) Wrap(content string) string {
	return w.open + content + w.close
}
