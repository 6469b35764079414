package solr

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// escapeText escapes element text content.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes attribute values for double-quoted attributes.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// escapeContent escapes large embedded text bodies. On top of the standard
// element escaping it drops characters that are illegal in XML 1.0, which
// extracted document bodies routinely carry.
func escapeContent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isLegalXMLChar(r) {
			continue
		}
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLegalXMLChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
