package convert

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is one node of a ProseMirror-style document tree.
type Node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Converter turns a ProseMirror-style node tree into Markdown.
type Converter interface {
	Convert(doc *Node) (string, error)
}

// ParseNodeTree decodes a raw body_json payload.
func ParseNodeTree(raw []byte) (*Node, error) {
	var doc Node
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse structured body: %w", err)
	}
	return &doc, nil
}

// Substack uses camelCase node and mark names where standard ProseMirror
// uses snake_case.
var nodeTypeAliases = map[string]string{
	"orderedList":    "ordered_list",
	"bulletList":     "bullet_list",
	"listItem":       "list_item",
	"hardBreak":      "hard_break",
	"codeBlock":      "code_block",
	"horizontalRule": "horizontal_rule",
}

var markTypeAliases = map[string]string{
	"bold":   "strong",
	"italic": "em",
}

// Normalize rewrites Substack node and mark names to the standard vocabulary.
// The receiver is left untouched.
func (n *Node) Normalize() *Node {
	normalized := *n
	if alias, ok := nodeTypeAliases[n.Type]; ok {
		normalized.Type = alias
	}
	if len(n.Marks) > 0 {
		normalized.Marks = make([]Mark, len(n.Marks))
		for i, mark := range n.Marks {
			normalized.Marks[i] = mark
			if alias, ok := markTypeAliases[mark.Type]; ok {
				normalized.Marks[i].Type = alias
			}
		}
	}
	if len(n.Content) > 0 {
		normalized.Content = make([]Node, len(n.Content))
		for i := range n.Content {
			normalized.Content[i] = *n.Content[i].Normalize()
		}
	}
	return &normalized
}

func (n *Node) hasMark(markType string) bool {
	for _, mark := range n.Marks {
		if mark.Type == markType {
			return true
		}
	}
	return false
}

func (n *Node) markAttr(markType, attr string) string {
	for _, mark := range n.Marks {
		if mark.Type == markType {
			if value, ok := mark.Attrs[attr].(string); ok {
				return value
			}
		}
	}
	return ""
}

// TreeConverter is the built-in recursive tree walk. It handles the fixed
// node vocabulary (paragraphs, lists, text with marks) and skips unknown
// node types silently to stay forward-compatible.
type TreeConverter struct{}

func NewTreeConverter() *TreeConverter {
	return &TreeConverter{}
}

func (c *TreeConverter) Convert(doc *Node) (string, error) {
	if doc == nil {
		return "", nil
	}
	blocks := c.convertBlocks(doc.Normalize().Content, 0)
	return strings.TrimSpace(strings.Join(blocks, "\n\n")), nil
}

func (c *TreeConverter) convertBlocks(nodes []Node, depth int) []string {
	var blocks []string
	for i := range nodes {
		block, ok := c.convertBlock(&nodes[i], depth)
		if !ok {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func (c *TreeConverter) convertBlock(node *Node, depth int) (string, bool) {
	switch node.Type {
	case "paragraph":
		return c.convertInline(node.Content), true
	case "heading":
		level := 1
		if value, ok := node.Attrs["level"].(float64); ok && int(value) >= 1 && int(value) <= 6 {
			level = int(value)
		}
		return strings.Repeat("#", level) + " " + c.convertInline(node.Content), true
	case "ordered_list":
		return c.convertList(node, depth, true), true
	case "bullet_list":
		return c.convertList(node, depth, false), true
	case "horizontal_rule":
		return "---", true
	default:
		// Unknown node types are skipped silently.
		return "", false
	}
}

func (c *TreeConverter) convertList(list *Node, depth int, ordered bool) string {
	indent := strings.Repeat("    ", depth)

	var lines []string
	index := 1
	for i := range list.Content {
		item := &list.Content[i]
		if item.Type != "list_item" {
			continue
		}

		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
		}
		index++

		// A list item mixes inline paragraphs and, possibly, nested lists.
		var itemLines []string
		for j := range item.Content {
			child := &item.Content[j]
			switch child.Type {
			case "paragraph":
				itemLines = append(itemLines, indent+marker+c.convertInline(child.Content))
			case "ordered_list":
				itemLines = append(itemLines, c.convertList(child, depth+1, true))
			case "bullet_list":
				itemLines = append(itemLines, c.convertList(child, depth+1, false))
			}
			// First paragraph carries the marker; following ones would be
			// continuation text and are rare enough to treat as new items.
			marker = "  "
		}
		lines = append(lines, itemLines...)
	}

	return strings.Join(lines, "\n")
}

func (c *TreeConverter) convertInline(nodes []Node) string {
	var sb strings.Builder
	for i := range nodes {
		node := &nodes[i]
		switch node.Type {
		case "text":
			sb.WriteString(c.convertText(node))
		case "hard_break":
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// convertText applies inline marks in a fixed precedence order (code
// innermost, then bold, then italic, then link outermost) so that
// overlapping marks nest deterministically regardless of input order.
func (c *TreeConverter) convertText(node *Node) string {
	text := node.Text
	if node.hasMark("code") {
		text = "`" + text + "`"
	}
	if node.hasMark("strong") {
		text = "**" + text + "**"
	}
	if node.hasMark("em") {
		text = "*" + text + "*"
	}
	if href := node.markAttr("link", "href"); href != "" {
		text = "[" + text + "](" + href + ")"
	}
	return text
}
