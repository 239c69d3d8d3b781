// Package htmldoc adapts an HTML page to the wall randomizer.
//
// A [Document] stands in for the browser's DOM: [Document.Targets] collects
// every element with a given tag name in document order, and setting a
// target's style rewrites that element's style attribute. Nothing else in
// the tree is touched.
package htmldoc

import (
	"bytes"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/wall"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse html")
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load parses the HTML file at path.
func Load(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Element is one matched element. It implements [wall.Target].
type Element struct {
	node *html.Node
}

// SetStyle replaces the element's style attribute, adding it if absent.
func (e *Element) SetStyle(style string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == "style" {
			e.node.Attr[i].Val = style
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: "style", Val: style})
}

// Style returns the current style attribute.
func (e *Element) Style() string {
	return e.Attr("style")
}

// Attr returns the value of attribute key, or "" if absent.
func (e *Element) Attr(key string) string {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Elements returns every element named tag in document order. Matching is
// case-insensitive, as in HTML.
func (d *Document) Elements(tag string) []*Element {
	tag = strings.ToLower(tag)
	var out []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, &Element{node: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// Images returns every <img> element in document order.
func (d *Document) Images() []*Element {
	return d.Elements("img")
}

// Targets returns the elements named tag as randomizer targets.
func (d *Document) Targets(tag string) []wall.Target {
	return wall.Targets(d.Elements(tag))
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render html")
	}
	return nil
}

// Bytes renders the document to a byte slice.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Apply lays out the elements named tag with r, the equivalent of running
// the scatter script once on page load.
func Apply(d *Document, tag string, r *wall.Randomizer) (wall.Layout, error) {
	if err := errors.ValidateSelector(tag); err != nil {
		return wall.Layout{}, err
	}
	return r.Apply(d.Targets(tag))
}
