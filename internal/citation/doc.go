// Package citation parses free-text legislative citations and renders them
// in full, short or pinpoint style.
//
// Accepted shapes, tried in this order:
//
//	المادة 5 من قانون ...                    Arabic
//	Article 5, Federal Decree-Law No. 45 of 2021   prefix
//	Section 5, DIFC Data Protection Law            prefix
//	Federal Decree-Law No. 45 of 2021, Art. 5      suffix
//	DIFC Data Protection Law, s. 5                 suffix
//	fdl-45-2021, art. 2                            id-based
//
// Anything else is a bare document reference.
package citation
