package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "br becomes newline",
			input:    "first<br>second<br/>third<BR />fourth",
			expected: "first\nsecond\nthird\nfourth",
		},
		{
			name:     "tags stripped",
			input:    `<p class="x"><strong>Article 1</strong> Scope</p>`,
			expected: "Article 1 Scope",
		},
		{
			name:     "named and numeric entities",
			input:    "Tom &amp; Jerry &#8211; &#x2019;quoted&rsquo; &ldquo;x&rdquo;",
			expected: "Tom & Jerry – ’quoted’ “x”",
		},
		{
			name:     "non-breaking spaces collapse",
			input:    "Article&nbsp;&nbsp;5\u00a0A",
			expected: "Article 5 A",
		},
		{
			name:     "zero-width spaces removed",
			input:    "Per\u200bsonal\ufeff Data",
			expected: "Personal Data",
		},
		{
			name:     "blank lines collapse to one",
			input:    "one\n\n\n\n\ntwo",
			expected: "one\n\ntwo",
		},
		{
			name:     "lines trimmed",
			input:    "   one   \n\t two \t",
			expected: "one\ntwo",
		},
		{
			name:     "script and style removed",
			input:    "<script>var a = 1;</script><style>p{}</style>Body",
			expected: "Body",
		},
		{
			name:     "comparison operator survives",
			input:    "if a < b then",
			expected: "if a < b then",
		},
		{
			name:     "arabic preserved",
			input:    "<p>المادة (1)</p><p>تعريفات</p>",
			expected: "المادة (1)\nتعريفات",
		},
		{
			name:     "arabic diacritics preserved",
			input:    "<b>القَانُون</b>",
			expected: "القَانُون",
		},
		{
			name:     "zero-width non-joiner kept",
			input:    "a\u200cb",
			expected: "a\u200cb",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripHTML(tt.input))
		})
	}
}

func TestStripHTML_Idempotent(t *testing.T) {
	inputs := []string{
		"<h2>Chapter 1 &mdash; General</h2><p>Article 1</p><p>Text&nbsp;here</p>",
		"<div>المادة&nbsp;(٢)<br>يُقصد بالكلمات</div>\n\n\n<p>&amp;lt;b&amp;gt;</p>",
		"&lt;strong&gt;Escaped markup&lt;/strong&gt; and &amp;amp; chains",
		"  \u00a0 mixed \u200b <i>content</i>\r\nwith CRLF  ",
		"plain already normalised text\n\nsecond paragraph",
	}

	for _, input := range inputs {
		once := StripHTML(input)
		assert.Equal(t, once, StripHTML(once), "input: %q", input)
	}
}

func TestStripHTML_KeepsEscapedPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "placeholder and comparison",
			input:    "<p>Insert &lt;name of applicant&gt; here; where a &lt; b.</p>",
			expected: "Insert <name of applicant> here; where a < b.",
		},
		{
			name:     "arabic placeholder",
			input:    "<div>&lt;اسم المنشأة&gt;</div>",
			expected: "<اسم المنشأة>",
		},
		{
			name:     "unknown element-like word",
			input:    "<span>see &lt;Schedule 2&gt;</span>",
			expected: "see <Schedule 2>",
		},
		{
			name:     "real elements still removed",
			input:    "<!DOCTYPE html><TD>cell</TD> <o:p></o:p><section id=\"a\">text</section>",
			expected: "cell text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := StripHTML(tt.input)
			assert.Equal(t, tt.expected, once)
			assert.Equal(t, once, StripHTML(once))
		})
	}
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "title element",
			input:    "<html><head><title>Federal Decree-Law No. 45 of 2021</title></head><body></body></html>",
			expected: "Federal Decree-Law No. 45 of 2021",
		},
		{
			name:     "entities decoded",
			input:    "<title>Data Protection &amp; Privacy</title>",
			expected: "Data Protection & Privacy",
		},
		{
			name:     "arabic title",
			input:    "<title>مرسوم بقانون اتحادي رقم 45</title>",
			expected: "مرسوم بقانون اتحادي رقم 45",
		},
		{
			name:     "no title",
			input:    "<p>Article 1</p>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageTitle([]byte(tt.input)))
		})
	}
}
