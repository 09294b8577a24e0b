package document

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

const (
	minParagraphLength = 50
	summaryFallback    = "Read the full post for more details."
)

// Summary extracts the first meaningful paragraph of a post content: not a
// heading, not an image, not a horizontal rule, not boilerplate, and long
// enough to be worth posting.
func Summary(content string) string {
	p := parser.New()
	root := p.Parse([]byte(content))

	for _, node := range root.GetChildren() {
		paragraph, ok := node.(*ast.Paragraph)
		if !ok {
			// Headings, rules, lists, code blocks...
			continue
		}

		text := strings.TrimSpace(plainText(paragraph))
		if len([]rune(text)) < minParagraphLength {
			continue
		}
		// The document's own metadata block
		if strings.HasPrefix(text, "Published:") {
			continue
		}
		// Boilerplate footers
		if strings.Contains(text, "Thanks for reading") || strings.Contains(text, "Subscribe") {
			continue
		}

		return strings.Join(strings.Fields(text), " ")
	}

	return summaryFallback
}

// plainText flattens a node subtree to its raw text, ignoring images.
func plainText(node ast.Node) string {
	var sb strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if _, ok := n.(*ast.Image); ok {
			return ast.SkipChildren
		}
		if leaf := n.AsLeaf(); leaf != nil {
			sb.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return sb.String()
}
