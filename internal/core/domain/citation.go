package domain

// CitationFormat records which citation shape a string was parsed as.
type CitationFormat string

const (
	CitationArabic        CitationFormat = "arabic"
	CitationArticlePrefix CitationFormat = "article_prefix"
	CitationSectionPrefix CitationFormat = "section_prefix"
	CitationArticleSuffix CitationFormat = "article_suffix"
	CitationSectionSuffix CitationFormat = "section_suffix"
	CitationIDBased       CitationFormat = "id_based"
	CitationBare          CitationFormat = "bare"
)

// Citation is a parsed free-text reference to a provision.
// It only lives for the duration of a single resolve or validate call.
type Citation struct {
	// Raw is the trimmed input.
	Raw string `json:"raw"`

	// DocumentRef is the free-text law reference.
	DocumentRef string `json:"document_ref"`

	// ArticleRef is the raw numeral, empty for bare references.
	ArticleRef string `json:"article_ref,omitempty"`

	Format CitationFormat `json:"format"`
}

// HasArticle reports whether the citation names a provision.
func (c Citation) HasArticle() bool {
	return c.ArticleRef != ""
}

// CitationStyle selects how a citation is re-rendered.
type CitationStyle string

const (
	// StyleFull renders "{Label} {N}, {Law}".
	StyleFull CitationStyle = "full"

	// StyleShort renders "{Abbrev} {N}, {Law up to the first parenthesis}".
	StyleShort CitationStyle = "short"

	// StylePinpoint renders "{Abbrev} {N}".
	StylePinpoint CitationStyle = "pinpoint"
)

// IsValid reports whether the style is known.
func (s CitationStyle) IsValid() bool {
	return s == StyleFull || s == StyleShort || s == StylePinpoint
}

// ResolvedReference is the outcome of a successful citation resolution.
type ResolvedReference struct {
	DocumentID   string `json:"document_id"`
	ProvisionRef string `json:"provision_ref"`

	// Label is the zone numbering label ("Article" or "Section").
	Label string `json:"label"`
}

// Resolution is the outcome of resolving a user-supplied document reference.
// A miss is an ordinary value with Found false and a Reason, never an error.
type Resolution struct {
	Input      string `json:"input"`
	Found      bool   `json:"found"`
	DocumentID string `json:"document_id,omitempty"`

	// Strategy names the cascade stage that matched.
	Strategy string `json:"strategy,omitempty"`

	Reason string `json:"reason,omitempty"`
}

// CitationValidation is the outcome of validating a citation string.
type CitationValidation struct {
	Citation      string             `json:"citation"`
	Parsed        *Citation          `json:"parsed,omitempty"`
	Valid         bool               `json:"valid"`
	DocumentID    string             `json:"document_id,omitempty"`
	DocumentTitle string             `json:"document_title,omitempty"`
	Status        Status             `json:"status,omitempty"`
	Reference     *ResolvedReference `json:"reference,omitempty"`

	// Normalized is "{Label} {N}, {Title}" when the citation resolved.
	Normalized string `json:"normalized,omitempty"`

	// Warnings carry not-found reasons and repealed/amended notices.
	Warnings []string `json:"warnings,omitempty"`
}
