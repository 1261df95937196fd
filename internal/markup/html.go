// Package markup extracts field descriptors from already-structured HTML
// documents. Unlike the image pipeline there is no fusion problem here:
// the field set is exactly what the markup declares, so the result carries
// full confidence.
package markup

import (
	"bytes"
	"context"
	"log"
	"strings"

	"golang.org/x/net/html"

	"github.com/formsense/formsense/internal/extract"
)

// FormType reported for markup-extracted documents.
const FormType = "html"

// Input types that carry no user data and are never reported as fields.
var skippedInputTypes = map[string]bool{
	"submit": true,
	"button": true,
	"image":  true,
	"reset":  true,
	"hidden": true,
}

// Extractor walks HTML form trees.
type Extractor struct {
	logger *log.Logger
}

// NewExtractor returns a markup extractor. A nil logger falls back to the
// default logger.
func NewExtractor(logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{logger: logger}
}

// Extract pulls field descriptors out of an HTML document. The first
// <form> subtree is preferred; documents without a form tag are scanned
// whole. Unparseable input degrades to an empty field list rather than an
// error, matching how callers treat malformed uploads.
func (e *Extractor) Extract(_ context.Context, data []byte) (*extract.ExtractionResult, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		e.logger.Printf("markup: parse failed: %v", err)
		return &extract.ExtractionResult{
			FormType:  FormType,
			Fields:    []extract.MergedField{},
			PageCount: 1,
		}, nil
	}

	root := firstForm(doc)
	if root == nil {
		root = doc
	}
	labels := labelIndex(doc)

	fields := make([]extract.MergedField, 0)
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "input", "select", "textarea":
		default:
			return
		}

		fieldType := n.Data
		if n.Data == "input" {
			fieldType = attr(n, "type")
			if fieldType == "" {
				fieldType = "text"
			}
		}
		if skippedInputTypes[fieldType] {
			return
		}

		name := attr(n, "name")
		id := attr(n, "id")
		if name == "" && id == "" {
			return
		}
		if name == "" {
			name = id
		}

		fields = append(fields, extract.MergedField{
			Name:       name,
			Label:      labelFor(n, labels),
			Type:       fieldType,
			Value:      attr(n, "value"),
			Page:       1,
			Position:   extract.TextPosition(len(fields)),
			Required:   hasAttr(n, "required"),
			Confidence: extract.ConfidenceMarkupDocument,
		})
	})

	return &extract.ExtractionResult{
		FormType:   FormType,
		Fields:     fields,
		PageCount:  1,
		Confidence: extract.ConfidenceMarkupDocument,
	}, nil
}

// labelFor resolves the human-readable label of an input: aria-label first,
// then an associated <label for=...>, then placeholder, then the name.
func labelFor(n *html.Node, labels map[string]string) string {
	if aria := attr(n, "aria-label"); aria != "" {
		return aria
	}
	if id := attr(n, "id"); id != "" {
		if text, ok := labels[id]; ok && text != "" {
			return text
		}
	}
	if placeholder := attr(n, "placeholder"); placeholder != "" {
		return placeholder
	}
	if name := attr(n, "name"); name != "" {
		return name
	}
	return attr(n, "id")
}

// labelIndex maps label "for" targets to their text content.
func labelIndex(doc *html.Node) map[string]string {
	labels := make(map[string]string)
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "label" {
			if target := attr(n, "for"); target != "" {
				labels[target] = strings.TrimSpace(textContent(n))
			}
		}
	})
	return labels
}

func firstForm(doc *html.Node) *html.Node {
	var form *html.Node
	walk(doc, func(n *html.Node) {
		if form == nil && n.Type == html.ElementNode && n.Data == "form" {
			form = n
		}
	})
	return form
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
