package render

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var htmlTagRe = regexp.MustCompile(`(?i)<(html|body|div|p|br|span|table|a|td|li)\b[^>]*>`)

// LooksLikeHTML reports whether s appears to carry HTML markup
func LooksLikeHTML(s string) bool {
	return htmlTagRe.MatchString(s)
}

// HTMLToText parses markup and returns its readable text. Block elements
// become line breaks, list items become "- " bullets, script and style
// contents are dropped, and link targets follow their text in brackets.
func HTMLToText(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text := SanitizeForTerminal(n.Data)
			if strings.TrimSpace(text) == "" {
				if b.Len() > 0 && !endsWithSpace(b.String()) {
					b.WriteByte(' ')
				}
				return
			}
			if startsWithSpace(n.Data) && b.Len() > 0 && !endsWithSpace(b.String()) {
				b.WriteByte(' ')
			}
			b.WriteString(OneLine(text))
			if endsWithSpace(n.Data) {
				b.WriteByte(' ')
			}
			return
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			switch tag {
			case "script", "style", "head", "title", "noscript":
				return
			case "br":
				b.WriteByte('\n')
				return
			case "li":
				ensureNewline(&b)
				b.WriteString("- ")
			case "p", "div", "tr", "table", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
				ensureNewline(&b)
			}

			for c := n.FirstChild; c != nil; c = c.NextSibling {
				visit(c)
			}

			switch tag {
			case "a":
				if href := attr(n, "href"); href != "" && strings.HasPrefix(strings.ToLower(href), "http") {
					b.WriteString(" [" + href + "]")
				}
			case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
				ensureNewline(&b)
				b.WriteByte('\n')
			case "li", "div", "tr", "table", "ul", "ol":
				ensureNewline(&b)
			case "td", "th":
				b.WriteByte(' ')
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	lines := strings.Split(normalizeNewlines(b.String()), "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(ln)
	}
	return strings.TrimSpace(collapseBlankLines(strings.Join(lines, "\n"))), nil
}

func ensureNewline(b *strings.Builder) {
	s := b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	b.WriteByte('\n')
}

func startsWithSpace(s string) bool {
	return s != "" && strings.ContainsAny(s[:1], " \t\n\r")
}

func endsWithSpace(s string) bool {
	return s != "" && strings.ContainsAny(s[len(s)-1:], " \t\n\r")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
