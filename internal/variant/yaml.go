package variant

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML emits an explicit node tree so Real keeps its float tag and
// table keys come out sorted.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.payload.(bool)))
	case KindInt:
		return scalarNode("!!int", strconv.FormatInt(v.payload.(int64), 10))
	case KindReal:
		return scalarNode("!!float", yamlReal(v.payload.(float64)))
	case KindString:
		return scalarNode("!!str", v.payload.(string))
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.payload.([]Value) {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case KindTable:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m := v.payload.(map[string]Value)
		for _, k := range v.Keys() {
			node.Content = append(node.Content, scalarNode("!!str", k), m[k].yamlNode())
		}
		return node
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return formatReal(f)
}
