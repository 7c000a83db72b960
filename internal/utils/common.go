// Package utils holds small string helpers shared by the CLI and the codec.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s on sep, trims each part and drops empty ones.
func SplitAndTrim(s, sep string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// JSONPointerToPath renders the JSON Pointer (RFC 6901) of a schema error as
// a readable path, e.g. "#/rows/1/date" becomes "rows[1].date".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	var b strings.Builder
	for tok := range strings.SplitSeq(ptr, "/") {
		tok = pointerUnescaper.Replace(tok)
		switch {
		case tok == "":
		case isIndex(tok):
			b.WriteString("[" + tok + "]")
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(tok)
		}
	}
	return b.String()
}

func isIndex(tok string) bool {
	n, err := strconv.Atoi(tok)
	return err == nil && n >= 0 && tok[0] != '+'
}
