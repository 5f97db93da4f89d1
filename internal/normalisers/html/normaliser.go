package html

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxPasses bounds the fixed-point loop in StripHTML. Every pass that
// changes the text removes markup, so real documents settle in two or three.
const maxPasses = 16

// elementNames lists the elements StripHTML removes. Anything else in angle
// brackets is text, such as a decoded "<name of applicant>" placeholder.
const elementNames = `a|abbr|acronym|address|area|article|aside|b|base|bdi|bdo|big|blockquote|body|` +
	`br|button|caption|center|cite|code|col|colgroup|dd|del|details|dfn|dir|div|dl|dt|em|` +
	`figcaption|figure|font|footer|form|h[1-6]|header|hr|html|i|iframe|img|input|ins|kbd|` +
	`label|legend|li|link|main|mark|meta|nav|nobr|noscript|o:p|ol|optgroup|option|p|picture|` +
	`pre|q|rp|rt|ruby|s|samp|section|select|small|source|span|strike|strong|sub|summary|sup|` +
	`svg|table|tbody|td|template|textarea|tfoot|th|thead|time|title|tr|tt|u|ul|var|wbr`

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag       = regexp.MustCompile(`(?is)<head(?:\s[^>]*)?>.*?</head>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)\s*>`)
	brTags        = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags       = regexp.MustCompile(`(?i)<(?:/?(?:` + elementNames + `)(?:\s[^>]*)?/?|![A-Za-z\[][^>]*)>`)
	multiSpaces   = regexp.MustCompile(`[ \t\f\v]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// spaceReplacer folds the space-like characters publishers embed in
// statutes. Zero-width joiners are left alone since Arabic shaping uses them.
var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u202f", " ", // narrow no-break space
	"\u2007", " ", // figure space
	"\u200b", "", // zero-width space
	"\ufeff", "", // zero-width no-break space / BOM
	"\r\n", "\n",
	"\r", "\n",
)

// StripHTML removes markup from an HTML fragment and returns plain text.
//
// <br> becomes a newline, closing block elements end a line, every other
// tag is removed and entities are decoded. Lines are trimmed and runs of
// blank lines collapse to one. The result is a fixed point: calling
// StripHTML on its own output returns it unchanged.
func StripHTML(content string) string {
	for range maxPasses {
		next := stripOnce(content)
		if next == content {
			break
		}
		content = next
	}
	return content
}

func stripOnce(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	content = brTags.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")

	content = html.UnescapeString(content)
	content = spaceReplacer.Replace(content)
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")

	content = multiNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// PageTitle returns the text of the document's <title> element, or an
// empty string when there is none.
func PageTitle(raw []byte) string {
	doc, err := xhtml.Parse(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var title string
	var walk func(n *xhtml.Node) bool
	walk = func(n *xhtml.Node) bool {
		if n.Type == xhtml.ElementNode && n.DataAtom == atom.Title {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == xhtml.TextNode {
					sb.WriteString(c.Data)
				}
			}
			title = StripHTML(sb.String())
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)

	return title
}
