// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research assistant.
package types

import (
	"fmt"
	"strings"
)

// Provider identifies which academic backend produced a record.
type Provider string

const (
	// ProviderArxiv is the Atom-feed backend (arXiv).
	ProviderArxiv Provider = "ArXiv"

	// ProviderSemanticScholar is the paper-graph backend (Semantic Scholar).
	ProviderSemanticScholar Provider = "Semantic Scholar"
)

// Placeholders rendered for absent record fields. Downstream formatting
// relies on fields never being silently empty.
const (
	NoAbstract = "(no abstract)"
	NoYear     = "(no year)"
	NoPDF      = "(no pdf)"
)

// maxDisplayAuthors caps how many authors Format prints before "et al.".
const maxDisplayAuthors = 5

// Record is one normalized bibliographic result. A Record either carries
// paper metadata or a non-empty Err; a non-empty Err on the first element
// of a result slice is the definitive failure signal for the whole query.
// An empty result slice means "no matches", not an error.
type Record struct {
	Source   Provider `json:"source"`
	Title    string   `json:"title,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	Year     string   `json:"year,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	PDFURL   string   `json:"pdf_url,omitempty"`

	// Err carries a provider-prefixed failure message (e.g.
	// "ArXiv Error: ..."). Empty on successful records.
	Err string `json:"error,omitempty"`
}

// IsError reports whether the record is a failure marker.
func (r Record) IsError() bool { return r.Err != "" }

// DisplayAuthors joins authors with ", ", capped at maxDisplayAuthors
// with an "et al." suffix when more exist.
func (r Record) DisplayAuthors() string {
	if len(r.Authors) == 0 {
		return "(unknown authors)"
	}
	if len(r.Authors) <= maxDisplayAuthors {
		return strings.Join(r.Authors, ", ")
	}
	return strings.Join(r.Authors[:maxDisplayAuthors], ", ") + " et al."
}

// Format renders the record as a human-readable block.
func (r Record) Format() string {
	if r.IsError() {
		return r.Err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", r.Title)
	fmt.Fprintf(&sb, "Authors: %s\n", r.DisplayAuthors())
	fmt.Fprintf(&sb, "Year: %s\n", orPlaceholder(r.Year, NoYear))
	fmt.Fprintf(&sb, "Abstract: %s\n", orPlaceholder(r.Abstract, NoAbstract))
	fmt.Fprintf(&sb, "PDF: %s\n", orPlaceholder(r.PDFURL, NoPDF))
	fmt.Fprintf(&sb, "Source: %s\n", r.Source)
	return sb.String()
}

// FormatRecords renders a result slice for display, numbering the entries.
func FormatRecords(records []Record) string {
	if len(records) == 0 {
		return "No matching papers found."
	}
	if records[0].IsError() {
		return records[0].Err
	}

	var sb strings.Builder
	for i, r := range records {
		fmt.Fprintf(&sb, "--- Paper %d ---\n", i+1)
		sb.WriteString(r.Format())
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
