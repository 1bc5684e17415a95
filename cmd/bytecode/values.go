package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/errors"
)

// parseValue reads a YAML value. Mappings keep their key order.
func parseValue(text string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindOther, err, "parse value")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "empty value")
	}
	return nodeValue(doc.Content[0])
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m := make(codec.Map, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m = append(m, codec.Entry{Key: n.Content[i].Value, Value: v})
		}
		return m, nil

	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case yaml.AliasNode:
		return nodeValue(n.Alias)

	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, errors.InvalidInput(errors.PhaseEncode, fmt.Sprintf("unsupported YAML node at line %d", n.Line))
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i, nil
		}
		u, err := strconv.ParseUint(n.Value, 0, 64)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindOther, err, "integer "+n.Value)
		}
		return u, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errors.Wrap(errors.PhaseEncode, errors.KindOther, err, "bool "+n.Value)
		}
		return b, nil
	case "!!null":
		return nil, nil
	}
	return n.Value, nil
}

// renderValue writes a Plain value as YAML, keeping Map order and putting
// tuples on one line.
func renderValue(v any) (string, error) {
	n, err := valueNode(v)
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", errors.Wrap(errors.PhaseDecode, errors.KindOther, err, "render value")
	}
	return string(out), nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case codec.Map:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range v {
			val, err := valueNode(e.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: e.Key}, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, e := range v {
			val, err := valueNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindOther, err, fmt.Sprintf("render %T", v))
	}
	return n, nil
}

// parseHex accepts hex digits with optional whitespace, commas and 0x
// prefixes, so "02 02 07", "0x0202" and "02,02" all work.
func parseHex(parts ...string) ([]byte, error) {
	var sb strings.Builder
	for _, p := range parts {
		for _, f := range strings.FieldsFunc(p, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t' || r == '\n'
		}) {
			f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
			sb.WriteString(f)
		}
	}
	s := sb.String()
	if len(s)%2 == 1 {
		return nil, errors.InvalidInput(errors.PhaseDecode, "odd number of hex digits")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindOther, err, "parse hex")
	}
	return b, nil
}

// formatHex renders bytes as space-separated pairs.
func formatHex(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString([]byte{c}))
	}
	return sb.String()
}
