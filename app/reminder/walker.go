package reminder

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MaxDepth bounds sub-record nesting below a top-level record.
const MaxDepth = 8

// Walker decodes the nested-list export document.
type Walker struct{}

func NewWalker() *Walker {
	return &Walker{}
}

// Run decodes every top-level record (body > ul > li) of an export document.
func (w *Walker) Run(r io.Reader) ([]Fields, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var records []Fields
	var walkErr error
	doc.Find("body > ul > li").EachWithBreak(func(i int, record *goquery.Selection) bool {
		fields, err := w.decode(record, 0)
		if err != nil {
			walkErr = fmt.Errorf("record %d: %w", i, err)
			return false
		}
		records = append(records, fields)
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	slog.Debug("Document walked", "records", len(records))
	return records, nil
}

func (w *Walker) decode(node *goquery.Selection, depth int) (Fields, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d levels", ErrStructuralDefect, MaxDepth)
	}

	fields := make(Fields)
	items := node.ChildrenFiltered("ul").ChildrenFiltered("li")
	for i := range items.Nodes {
		item := items.Eq(i)
		children := item.Children()
		if children.Length() != 2 {
			return nil, fmt.Errorf("%w: field item %d has %d children, want 2",
				ErrStructuralDefect, i, children.Length())
		}

		label, value := children.Eq(0), children.Eq(1)
		key := strings.TrimRight(ownText(label), ":")
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrStructuralDefect, key)
		}

		sub, err := w.decode(value, depth+1)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		if len(sub) > 0 {
			fields[key] = Value{Sub: sub}
		} else {
			fields[key] = Value{Text: ownText(value)}
		}
	}

	return fields, nil
}

// ownText returns the text preceding the node's first child element.
func ownText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	var b strings.Builder
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
