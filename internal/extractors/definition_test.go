package extractors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

func TestIsDefinitionsProvision(t *testing.T) {
	tests := []struct {
		name     string
		p        domain.ParsedProvision
		expected bool
	}{
		{"english title", domain.ParsedProvision{Title: "Definitions"}, true},
		{"case insensitive", domain.ParsedProvision{Title: "DEFINITIONS AND INTERPRETATION"}, true},
		{"arabic title", domain.ParsedProvision{Title: "تعريفات"}, true},
		{"arabic variant in content", domain.ParsedProvision{Content: "تعاريف\nفي تطبيق أحكام هذا القانون"}, true},
		{"whole word only", domain.ParsedProvision{Title: "Predefinitions"}, false},
		{"heading beyond probe", domain.ParsedProvision{Content: strings.Repeat("x", 300) + " definitions"}, false},
		{"other provision", domain.ParsedProvision{Title: "Scope", Content: "This Law applies."}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDefinitionsProvision(tt.p))
		})
	}
}

func TestExtractDefinitions_English(t *testing.T) {
	provisions := []domain.ParsedProvision{
		{
			ProvisionRef: "art1",
			Title:        "Definitions",
			Content: "In this Law:\n" +
				"\"Controller\" means the person who determines the purposes of processing; and\n" +
				"“Data” includes any information relating to a person;\n" +
				"\"Court\" has the meaning given in Article 9.",
		},
		{
			ProvisionRef: "art2",
			Title:        "Scope",
			Content:      "\"Ignored\" means this provision is not a glossary article.",
		},
	}

	defs := ExtractDefinitions(provisions)
	require.Len(t, defs, 3)

	assert.Equal(t, "Controller", defs[0].Term)
	assert.Equal(t, `"Controller" means the person who determines the purposes of processing`, defs[0].Definition)
	assert.Equal(t, "art1", defs[0].SourceProvision)

	assert.Equal(t, "Data", defs[1].Term)
	assert.Equal(t, `"Data" includes any information relating to a person`, defs[1].Definition)

	assert.Equal(t, "Court", defs[2].Term)
	assert.Equal(t, `"Court" has the meaning given in Article 9.`, defs[2].Definition)
}

func TestExtractDefinitions_Arabic(t *testing.T) {
	provisions := []domain.ParsedProvision{{
		ProvisionRef: "art1",
		Title:        "تعريفات",
		Content: "في تطبيق أحكام هذا المرسوم بقانون، يقصد بالكلمات التالية المعاني المبينة قرين كل منها\n" +
			"الدولة: الإمارات العربية المتحدة.\n" +
			"«البيانات الشخصية» : أي بيانات تتعلق بشخص طبيعي محدد؛ أو قابل للتحديد\n" +
			"المكتب: أ.",
	}}

	defs := ExtractDefinitions(provisions)
	require.Len(t, defs, 2)

	assert.Equal(t, "الدولة", defs[0].Term)
	assert.Equal(t, `"الدولة" الإمارات العربية المتحدة`, defs[0].Definition)

	assert.Equal(t, "البيانات الشخصية", defs[1].Term)
	assert.Equal(t, `"البيانات الشخصية" أي بيانات تتعلق بشخص طبيعي محدد`, defs[1].Definition)
}

func TestExtractDefinitions_Limits(t *testing.T) {
	long := strings.Repeat("a", MaxDefinitionLength+100)
	provisions := []domain.ParsedProvision{{
		ProvisionRef: "s1",
		Title:        "Definitions",
		Content:      "\"Tiny\" means x.\n\"Long\" means " + long,
	}}

	defs := ExtractDefinitions(provisions)
	require.Len(t, defs, 1)
	assert.Equal(t, "Long", defs[0].Term)
	assert.Equal(t, MaxDefinitionLength, len([]rune(defs[0].Definition)))
}

func TestDedupeDefinitions(t *testing.T) {
	in := []domain.ParsedDefinition{
		{Term: "Data", Definition: `"Data" means x y z`},
		{Term: "Court", Definition: `"Court" means the DIFC Courts`},
		{Term: "Data", Definition: `"Data" means any information at all`},
	}

	out := DedupeDefinitions(in)
	require.Len(t, out, 2)
	assert.Equal(t, "Data", out[0].Term)
	assert.Equal(t, `"Data" means any information at all`, out[0].Definition)
	assert.Equal(t, "Court", out[1].Term)
}
