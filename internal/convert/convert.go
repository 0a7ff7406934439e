// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders structured markdown text into Word documents.
//
// The converter walks the goldmark AST and emits a minimal OOXML package.
// Markdown constructs without a docx mapping degrade to plain paragraphs;
// a conversion never fails because of an unsupported construct.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Converter turns markdown content into a binary document artifact.
type Converter interface {
	// Convert writes the document for content under the converter's root
	// and returns the written path.
	Convert(markdown, name string) (string, error)
}

// DocxConverter writes .docx files under a fixed root directory.
type DocxConverter struct {
	root string
	md   goldmark.Markdown
}

// NewDocxConverter returns a converter rooted at root (the document
// store root, so converted artifacts sit beside their sources).
func NewDocxConverter(root string) *DocxConverter {
	return &DocxConverter{
		root: root,
		md:   goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Convert renders markdown into <name>.docx under the root and returns
// the resolved path. The ".docx" suffix is appended when absent.
func (c *DocxConverter) Convert(markdown, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("document name is empty")
	}
	if !strings.EqualFold(filepath.Ext(name), ".docx") {
		name += ".docx"
	}

	path := filepath.Join(c.root, name)
	if !strings.HasPrefix(path, c.root+string(filepath.Separator)) {
		return "", fmt.Errorf("document name %q escapes the output root", name)
	}

	source := []byte(markdown)
	doc := c.md.Parser().Parse(text.NewReader(source))

	body := renderBody(doc, source)
	data, err := packageDocx(body)
	if err != nil {
		return "", fmt.Errorf("packaging docx: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// renderBody walks the document's block children and emits body XML.
func renderBody(doc ast.Node, source []byte) string {
	var b strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		renderBlock(&b, n, source, 0)
	}
	return b.String()
}

// renderBlock emits one block-level node. Anything without a dedicated
// mapping falls through to a plain paragraph of its text content.
func renderBlock(b *strings.Builder, n ast.Node, source []byte, listDepth int) {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level > 3 {
			level = 3
		}
		writeParagraph(b, fmt.Sprintf("Heading%d", level), 0, collectRuns(node, source, runStyle{}))

	case *ast.Paragraph, *ast.TextBlock:
		writeParagraph(b, "", listDepth, collectRuns(n, source, runStyle{}))

	case *ast.List:
		renderList(b, node, source, listDepth)

	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			renderBlock(b, c, source, listDepth)
		}

	case *ast.FencedCodeBlock:
		renderCodeLines(b, node, source)

	case *ast.CodeBlock:
		renderCodeLines(b, node, source)

	case *ast.ThematicBreak:
		writeParagraph(b, "", 0, nil)

	case *east.Table:
		renderTable(b, node, source)

	default:
		// Degrade: unsupported constructs become plain paragraphs.
		if runs := collectRuns(n, source, runStyle{}); len(runs) > 0 {
			writeParagraph(b, "", listDepth, runs)
		}
	}
}

// renderList emits each item as a bulleted or numbered paragraph.
// Nested lists indent one level deeper.
func renderList(b *strings.Builder, list *ast.List, source []byte, depth int) {
	index := 1
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}

		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				renderList(b, nested, source, depth+1)
				continue
			}
			runs := collectRuns(c, source, runStyle{})
			if first {
				runs = append([]run{{text: marker}}, runs...)
				first = false
			}
			writeParagraph(b, "", depth+1, runs)
		}
	}
}

// renderCodeLines degrades a code block to one paragraph per line.
func renderCodeLines(b *strings.Builder, n ast.Node, source []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(source)), "\n")
		writeParagraph(b, "", 0, []run{{text: line}})
	}
}

// renderTable emits a w:tbl with single-line borders. Header cells are
// bold.
func renderTable(b *strings.Builder, table *east.Table, source []byte) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/>` +
		`<w:left w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr>`)

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		_, isHeader := row.(*east.TableHeader)
		b.WriteString("<w:tr>")
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			b.WriteString("<w:tc>")
			writeParagraph(b, "", 0, collectRuns(cell, source, runStyle{bold: isHeader}))
			b.WriteString("</w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
}

// runStyle carries the inline formatting state during the AST walk.
type runStyle struct {
	bold   bool
	italic bool
}

// run is one styled text segment of a paragraph.
type run struct {
	text string
	runStyle
}

// collectRuns flattens the inline children of n into styled runs.
func collectRuns(n ast.Node, source []byte, style runStyle) []run {
	var runs []run
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			runs = append(runs, run{text: string(node.Segment.Value(source)), runStyle: style})
			if node.HardLineBreak() || node.SoftLineBreak() {
				runs = append(runs, run{text: " ", runStyle: style})
			}

		case *ast.Emphasis:
			child := style
			if node.Level >= 2 {
				child.bold = true
			} else {
				child.italic = true
			}
			runs = append(runs, collectRuns(node, source, child)...)

		case *ast.Link:
			// Degrade in-text links to "text (target)".
			runs = append(runs, collectRuns(node, source, style)...)
			if dest := string(node.Destination); dest != "" {
				runs = append(runs, run{text: " (" + dest + ")", runStyle: style})
			}

		case *ast.AutoLink:
			runs = append(runs, run{text: string(node.URL(source)), runStyle: style})

		case *ast.CodeSpan:
			runs = append(runs, run{text: string(node.Text(source)), runStyle: style})

		case *ast.Image:
			// Images have no docx mapping here; keep the alt text.
			runs = append(runs, collectRuns(node, source, style)...)

		default:
			runs = append(runs, collectRuns(c, source, style)...)
		}
	}
	return runs
}
