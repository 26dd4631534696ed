package webhost

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSStringLiteral renders s as a double-quoted JavaScript string literal that is safe
// to embed in an injected script, including inside an HTML script element.
func JSStringLiteral(s string) string {
	return jsStringLiteral(s, json.Marshal)
}

func jsStringLiteral(s string, marshal func(interface{}) ([]byte, error)) string {
	data, err := marshal([]string{s})
	if err != nil || len(data) < 4 || data[0] != '[' || data[len(data)-1] != ']' {
		return escapeLiteral(s)
	}
	return string(data[1 : len(data)-1])
}

// escapeLiteral is the manual escape used when JSON encoding is unavailable.
func escapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '<', '>', '&', '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
