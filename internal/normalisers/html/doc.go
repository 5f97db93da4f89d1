// Package html converts legislative HTML fragments into plain text.
// It strips tags, decodes entities and normalises whitespace while keeping
// Arabic script and combining marks exactly as published.
package html
