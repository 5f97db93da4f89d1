// Package extractors turns legislative HTML into structured statutes.
//
// One provision algorithm is shared by every legal zone; zones differ only
// in their marker vocabulary:
//
//   - federal: "المادة" and "Article" (art prefix)
//   - difc: "Article" (art prefix) and "Section" (s prefix)
//   - adgm: "Section", "Rule" and "Regulation" (s prefix)
//
// Definitions are mined from provisions headed "Definitions" (or the Arabic
// تعريفات / تعاريف) after provisions have been deduplicated.
package extractors
