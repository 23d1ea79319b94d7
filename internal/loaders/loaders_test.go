package loaders

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ForPath(t *testing.T) {
	registry := Default()

	tests := []struct {
		path string
		want Loader
	}{
		{"policy.txt", &Plaintext{}},
		{"policy.md", &Markdown{}},
		{"policy.MD", &Markdown{}},
		{"policy.html", &HTML{}},
		{"policy.htm", &HTML{}},
		{"policy.docx", &DOCX{}},
		{"policy.unknown", &Plaintext{}},
		{"noextension", &Plaintext{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.IsType(t, tt.want, registry.ForPath(tt.path))
		})
	}
}

func TestPlaintext_Extract(t *testing.T) {
	text, err := NewPlaintext().Extract([]byte("sum insured Rs 5,00,000"))

	require.NoError(t, err)
	assert.Equal(t, "sum insured Rs 5,00,000", text)
}

func TestMarkdown_Extract(t *testing.T) {
	input := "# Policy Summary\n\n" +
		"The **sum insured** is Rs 5,00,000 per [policy year](https://example.com).\n\n" +
		"- Cashless hospitalisation\n" +
		"- No claim bonus\n\n" +
		"```\ncode that should vanish\n```\n"

	text, err := NewMarkdown().Extract([]byte(input))

	require.NoError(t, err)
	assert.Contains(t, text, "Policy Summary")
	assert.Contains(t, text, "The sum insured is Rs 5,00,000 per policy year.")
	assert.Contains(t, text, "Cashless hospitalisation")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "https://example.com")
	assert.NotContains(t, text, "code that should vanish")
}

func TestHTML_Extract(t *testing.T) {
	input := `<html><head><title>Policy</title><style>p{color:red}</style></head>
<body>
<script>alert("hi")</script>
<h1>Coverage</h1>
<p>Hospitalisation expenses up to the sum insured.</p>
<p>Pre-existing diseases have a waiting period of 36 &amp; months.</p>
</body></html>`

	text, err := NewHTML().Extract([]byte(input))

	require.NoError(t, err)
	assert.Contains(t, text, "Coverage")
	assert.Contains(t, text, "Hospitalisation expenses up to the sum insured.")
	assert.Contains(t, text, "36 & months")
	assert.NotContains(t, text, "<p>")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color:red")
}

func TestHTML_Extract_BlockBoundaries(t *testing.T) {
	text, err := NewHTML().Extract([]byte("<p>first clause</p><p>second clause</p>"))

	require.NoError(t, err)
	assert.Equal(t, "first clause\nsecond clause", text)
}

// buildDOCX assembles a minimal .docx archive in memory.
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDOCX_Extract(t *testing.T) {
	data := buildDOCX(t, `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>Premium is payable </t></r><r><t>annually.</t></r></p>
    <p><r><t>Claims must be intimated within 48 hours.</t></r></p>
  </body>
</document>`)

	text, err := NewDOCX().Extract(data)

	require.NoError(t, err)
	assert.Equal(t, "Premium is payable annually.\nClaims must be intimated within 48 hours.", text)
}

func TestDOCX_Extract_NotAZip(t *testing.T) {
	_, err := NewDOCX().Extract([]byte("plain text, not a zip"))

	assert.Error(t, err)
}

func TestDOCX_Extract_MissingDocumentXML(t *testing.T) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	f, err := w.Create("unrelated.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("nothing"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	text, extractErr := NewDOCX().Extract(buf.Bytes())

	require.NoError(t, extractErr)
	assert.Empty(t, text)
}

func TestReadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.md")
	require.NoError(t, os.WriteFile(path, []byte("# Terms\n\nThe *premium* is fixed."), 0600))

	text, err := ReadPolicy(path)

	require.NoError(t, err)
	assert.Contains(t, text, "Terms")
	assert.Contains(t, text, "The premium is fixed.")
}

func TestReadPolicy_MissingFile(t *testing.T) {
	_, err := ReadPolicy(filepath.Join(t.TempDir(), "absent.txt"))

	assert.Error(t, err)
}
