// Package markdown writes the frontmatter documents produced by export.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Field is one frontmatter entry. Fields render in the order given.
type Field struct {
	Key   string
	Value any
}

// Split separates a leading frontmatter block from the body. Content without
// frontmatter yields an empty map and the content unchanged.
func Split(content string) (map[string]any, string, error) {
	if !strings.HasPrefix(content, fence) {
		return map[string]any{}, content, nil
	}
	rest := content[len(fence):]
	end := strings.Index(rest, "\n"+fence)
	if end < 0 {
		return nil, "", fmt.Errorf("frontmatter is not closed")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return nil, "", fmt.Errorf("decode frontmatter: %w", err)
	}
	return meta, rest[end+1+len(fence):], nil
}

// Render emits fields as YAML frontmatter followed by body.
func Render(fields []Field, body string) (string, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		value := &yaml.Node{}
		if err := value.Encode(f.Value); err != nil {
			return "", fmt.Errorf("encode frontmatter %s: %w", f.Key, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: f.Key}, value)
	}
	raw, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence)
	buf.Write(raw)
	buf.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}

// ReplaceBlock swaps the text between the start and end markers for
// generated, appending a fresh block when the markers are absent. Text outside
// the markers is preserved.
func ReplaceBlock(body, start, end, generated string) string {
	block := start + "\n" + generated + "\n" + end
	i := strings.Index(body, start)
	j := strings.Index(body, end)
	if i >= 0 && j > i {
		return body[:i] + block + body[j+len(end):]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
