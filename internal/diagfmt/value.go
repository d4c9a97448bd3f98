package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"crypt/internal/variant"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeStyles struct {
	key, kind, scalar lipgloss.Style
}

func newTreeStyles(enabled bool) treeStyles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return treeStyles{key: plain, kind: plain, scalar: plain}
	}
	return treeStyles{
		key:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		scalar: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// buildValueTreeNode описывает значение; name это ключ таблицы или индекс списка.
func buildValueTreeNode(name string, v variant.Value, st treeStyles) *treeNode {
	prefix := ""
	if name != "" {
		prefix = st.key.Render(name) + ": "
	}
	if k := v.Kind(); k != variant.KindList && k != variant.KindTable {
		return &treeNode{label: prefix + st.scalar.Render(v.String())}
	}

	node := &treeNode{label: prefix + st.kind.Render(fmt.Sprintf("%s (%d)", v.Kind(), v.Len()))}
	v.Range(func(key string, index int, item variant.Value) bool {
		if index >= 0 {
			key = fmt.Sprintf("[%d]", index)
		}
		node.children = append(node.children, buildValueTreeNode(key, item, st))
		return true
	})
	return node
}

func writeTree(sb *strings.Builder, node *treeNode, indent string, childIndent string) {
	sb.WriteString(indent)
	sb.WriteString(node.label)
	sb.WriteByte('\n')
	for i, child := range node.children {
		if i == len(node.children)-1 {
			writeTree(sb, child, childIndent+"└─ ", childIndent+"   ")
		} else {
			writeTree(sb, child, childIndent+"├─ ", childIndent+"│  ")
		}
	}
}

// FormatValueTree печатает дерево значения с отступами; ключи таблиц отсортированы.
func FormatValueTree(w io.Writer, v variant.Value, opts TreeOpts) error {
	var sb strings.Builder
	writeTree(&sb, buildValueTreeNode("", v, newTreeStyles(opts.Color)), "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatValueJSON выводит значение как JSON с отступами.
func FormatValueJSON(w io.Writer, v variant.Value) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatValueYAML выводит значение как YAML с отступом в два пробела.
func FormatValueYAML(w io.Writer, v variant.Value) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatValueMsgpack пишет значение в MessagePack.
func FormatValueMsgpack(w io.Writer, v variant.Value) error {
	return msgpack.NewEncoder(w).Encode(v)
}
