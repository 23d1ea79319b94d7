package loaders

import (
	"html"
	"regexp"
	"strings"
)

// HTML strips markup and extracts readable text. Policy portals often
// export documents as saved HTML pages.
type HTML struct{}

// NewHTML creates an HTML loader.
func NewHTML() *HTML {
	return &HTML{}
}

// Extensions returns the file extensions this loader handles.
func (l *HTML) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Pre-compiled regular expressions for HTML stripping.
var (
	htmlScriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	htmlStyleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlNoscriptTag  = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	htmlHeadTag      = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlSvgTag       = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments     = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlOpenBlocks   = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	htmlCloseBlocks  = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	htmlBrTags       = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlHrTags       = regexp.MustCompile(`(?i)<hr\s*/?>`)
	htmlAllTags      = regexp.MustCompile(`<[^>]+>`)
	htmlMultiSpace   = regexp.MustCompile(`[ \t]+`)
	htmlMultiNewline = regexp.MustCompile(`\n{3,}`)
)

// Extract removes markup and returns the text content, one trimmed
// non-empty line per block element.
func (l *HTML) Extract(data []byte) (string, error) {
	content := string(data)

	content = htmlScriptTag.ReplaceAllString(content, "")
	content = htmlStyleTag.ReplaceAllString(content, "")
	content = htmlNoscriptTag.ReplaceAllString(content, "")
	content = htmlHeadTag.ReplaceAllString(content, "")
	content = htmlSvgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block boundaries become newlines so sentences from adjacent
	// elements do not run together.
	content = htmlOpenBlocks.ReplaceAllString(content, "\n")
	content = htmlCloseBlocks.ReplaceAllString(content, "\n")
	content = htmlBrTags.ReplaceAllString(content, "\n")
	content = htmlHrTags.ReplaceAllString(content, "\n")

	content = htmlAllTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = htmlMultiSpace.ReplaceAllString(content, " ")
	content = htmlMultiNewline.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n"), nil
}
