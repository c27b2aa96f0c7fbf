package xml

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// longest reference we accept, "&#x10FFFF;" being the longest valid one
const maxEntityLen = 16

// unescape resolves the predefined entity references &amp; &lt; &gt; &quot;
// &apos; and decimal or hexadecimal character references in s. On failure it
// returns the offset and raw text of the first bad reference.
func unescape(s string) (string, int, string) {
	amp := strings.IndexByte(s, '&')
	if amp == -1 {
		return s, -1, ""
	}

	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s[:amp])
	for i := amp; i < len(s); {
		if s[i] != '&' {
			sb.WriteByte(s[i])
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 2 || maxEntityLen < semi {
			return "", i, rawEntity(s[i:])
		}
		ref := s[i+1 : i+semi]
		if ref[0] == '#' {
			r, ok := decodeCharRef(ref[1:])
			if !ok {
				return "", i, s[i : i+semi+1]
			}
			sb.WriteRune(r)
		} else {
			switch ref {
			case "amp":
				sb.WriteByte('&')
			case "lt":
				sb.WriteByte('<')
			case "gt":
				sb.WriteByte('>')
			case "quot":
				sb.WriteByte('"')
			case "apos":
				sb.WriteByte('\'')
			default:
				return "", i, s[i : i+semi+1]
			}
		}
		i += semi + 1
	}
	return sb.String(), -1, ""
}

// decodeCharRef decodes the digits of a numeric character reference, ref
// being the part after &#.
func decodeCharRef(ref string) (rune, bool) {
	base := 10
	if ref != "" && (ref[0] == 'x' || ref[0] == 'X') {
		base = 16
		ref = ref[1:]
	}
	v, err := strconv.ParseUint(ref, base, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

// rawEntity returns the reference text starting at s for diagnostics,
// truncated when unterminated.
func rawEntity(s string) string {
	if semi := strings.IndexByte(s, ';'); semi != -1 && semi < maxEntityLen {
		return s[:semi+1]
	}
	if maxEntityLen < len(s) {
		return s[:maxEntityLen]
	}
	return s
}
