package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		doc    string
		ref    string
		format domain.CitationFormat
	}{
		{
			name:   "arabic",
			input:  "المادة 5 من المرسوم بقانون اتحادي رقم 45 لسنة 2021",
			doc:    "المرسوم بقانون اتحادي رقم 45 لسنة 2021",
			ref:    "5",
			format: domain.CitationArabic,
		},
		{
			name:   "arabic with parentheses and arabic-indic digits",
			input:  "المادة (١٢) من قانون حماية البيانات",
			doc:    "قانون حماية البيانات",
			ref:    "12",
			format: domain.CitationArabic,
		},
		{
			name:   "article prefix",
			input:  "Article 2, Federal Decree-Law No. 45 of 2021",
			doc:    "Federal Decree-Law No. 45 of 2021",
			ref:    "2",
			format: domain.CitationArticlePrefix,
		},
		{
			name:   "abbreviated article prefix with of",
			input:  "Art. 5a of the Federal Law No. 5 of 1985",
			doc:    "Federal Law No. 5 of 1985",
			ref:    "5A",
			format: domain.CitationArticlePrefix,
		},
		{
			name:   "section prefix",
			input:  "Section 12, DIFC Data Protection Law",
			doc:    "DIFC Data Protection Law",
			ref:    "12",
			format: domain.CitationSectionPrefix,
		},
		{
			name:   "short section prefix",
			input:  "s. 3, ADGM Data Protection Regulations 2021",
			doc:    "ADGM Data Protection Regulations 2021",
			ref:    "3",
			format: domain.CitationSectionPrefix,
		},
		{
			name:   "article suffix",
			input:  "Federal Decree-Law No. 45 of 2021, Art. 7",
			doc:    "Federal Decree-Law No. 45 of 2021",
			ref:    "7",
			format: domain.CitationArticleSuffix,
		},
		{
			name:   "section suffix",
			input:  "DIFC Data Protection Law, s. 28",
			doc:    "DIFC Data Protection Law",
			ref:    "28",
			format: domain.CitationSectionSuffix,
		},
		{
			name:   "prefix wins over suffix",
			input:  "Article 1, Law of Companies, Article 9",
			doc:    "Law of Companies, Article 9",
			ref:    "1",
			format: domain.CitationArticlePrefix,
		},
		{
			name:   "id based",
			input:  "fdl-45-2021, art. 2",
			doc:    "fdl-45-2021",
			ref:    "2",
			format: domain.CitationIDBased,
		},
		{
			name:   "id with section suffix label",
			input:  "difc-law-5-2020, s. 3",
			doc:    "difc-law-5-2020",
			ref:    "3",
			format: domain.CitationIDBased,
		},
		{
			name:   "id with article suffix label",
			input:  "fdl-45-2021, Art. 7",
			doc:    "fdl-45-2021",
			ref:    "7",
			format: domain.CitationIDBased,
		},
		{
			name:   "id based section",
			input:  "adgm-dpr-2021 s 14",
			doc:    "adgm-dpr-2021",
			ref:    "14",
			format: domain.CitationIDBased,
		},
		{
			name:   "bare reference",
			input:  "  Personal Data   Protection Law ",
			doc:    "Personal Data Protection Law",
			format: domain.CitationBare,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, c.DocumentRef)
			assert.Equal(t, tt.ref, c.ArticleRef)
			assert.Equal(t, tt.format, c.Format)
			assert.Equal(t, tt.ref != "", c.HasArticle())
		})
	}
}

func TestParse_Blank(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrUnparseable)
	}
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "5A", NormalizeNumber("5a"))
	assert.Equal(t, "12", NormalizeNumber("١٢"))
	assert.Equal(t, "7B", NormalizeNumber(" 7B "))
}
