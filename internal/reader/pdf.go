// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"regexp"
	"strings"
)

// isPDF reports whether the fetched bytes, content type, or URL suffix
// indicate a PDF document.
func isPDF(body []byte, contentType, fetchedURL string) bool {
	return strings.Contains(contentType, "application/pdf") ||
		strings.HasSuffix(strings.ToLower(fetchedURL), ".pdf") ||
		(len(body) >= 4 && string(body[:4]) == "%PDF")
}

var (
	pdfTextObject  = regexp.MustCompile(`(?s)BT\s+(.*?)\s+ET`)
	pdfShowText    = regexp.MustCompile(`\(([^)\\]*(?:\\.[^)\\]*)*)\)\s*Tj`)
	pdfShowArray   = regexp.MustCompile(`\[([^\]]+)\]\s*TJ`)
	pdfArrayString = regexp.MustCompile(`\(([^)\\]*(?:\\.[^)\\]*)*)\)`)
	pdfBlankRuns   = regexp.MustCompile(`\n{3,}`)
)

// minScanResult is the threshold below which the BT/ET pass is judged
// to have failed (compressed streams, CID fonts) and the ASCII fallback
// kicks in.
const minScanResult = 200

// pdfToText performs a best-effort text extraction from raw PDF bytes
// by scanning BT/ET text objects for Tj/TJ show operators. It handles
// unencrypted PDFs with standard font encodings; for anything else it
// falls back to scanning for runs of printable ASCII.
func pdfToText(data []byte) string {
	s := string(data)
	var parts []string

	for _, object := range pdfTextObject.FindAllStringSubmatch(s, -1) {
		block := object[1]

		for _, m := range pdfShowText.FindAllStringSubmatch(block, -1) {
			if text := pdfUnescape(m[1]); looksReadable(text) {
				parts = append(parts, text)
			}
		}
		for _, m := range pdfShowArray.FindAllStringSubmatch(block, -1) {
			var sb strings.Builder
			for _, str := range pdfArrayString.FindAllStringSubmatch(m[1], -1) {
				sb.WriteString(pdfUnescape(str[1]))
			}
			if text := sb.String(); looksReadable(text) {
				parts = append(parts, text)
			}
		}
	}

	result := strings.Join(parts, " ")
	if len(strings.TrimSpace(result)) < minScanResult {
		return printableRuns(data)
	}
	return result
}

// pdfUnescape resolves the escape sequences of a PDF literal string.
func pdfUnescape(s string) string {
	replacer := strings.NewReplacer(
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
		`\\`, `\`,
		`\(`, "(",
		`\)`, ")",
	)
	return replacer.Replace(s)
}

// looksReadable rejects show-operator payloads that are mostly
// non-printable, which indicates a custom font encoding.
func looksReadable(s string) bool {
	if len(s) == 0 {
		return false
	}
	printable := 0
	for _, c := range s {
		if c >= 32 && c < 127 {
			printable++
		}
	}
	return printable > len(s)/2
}

// printableRuns extracts runs of printable ASCII from arbitrary bytes.
func printableRuns(data []byte) string {
	var sb strings.Builder
	run := 0
	for _, b := range data {
		if (b >= 32 && b < 127) || b == '\n' || b == '\r' || b == '\t' {
			sb.WriteByte(b)
			run++
			continue
		}
		if run > 0 {
			sb.WriteByte('\n')
		}
		run = 0
	}
	return strings.TrimSpace(pdfBlankRuns.ReplaceAllString(sb.String(), "\n\n"))
}
