package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// The goldmark instance is immutable once built; Convert and Parse keep
// per-call state.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Raw HTML in model output is omitted, never passed through.
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	})
	return markdownInstance
}

// HTML renders a markdown draft to an HTML fragment.
func HTML(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// PlainText flattens a markdown draft for formats without markup. List items
// keep a "- " bullet, blocks end with a newline and code is kept verbatim.
func PlainText(markdown string) (string, error) {
	source := []byte(markdown)
	doc := getMarkdown().Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		case *ast.ListItem:
			if entering {
				sb.WriteString("- ")
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					segment := lines.At(i)
					sb.Write(segment.Value(source))
				}
				sb.WriteByte('\n')
			}
			return ast.WalkSkipChildren, nil
		case *extast.TableCell:
			if !entering {
				sb.WriteString("\t")
			}
		case *extast.TableRow, *extast.TableHeader:
			if !entering {
				sb.WriteByte('\n')
			}
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock, *ast.ThematicBreak:
			if !entering {
				sb.WriteByte('\n')
				if n.Parent() != nil && n.Parent().Kind() == ast.KindDocument {
					sb.WriteByte('\n')
				}
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("flatten markdown: %w", err)
	}

	return strings.TrimSpace(sb.String()), nil
}
