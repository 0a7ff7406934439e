// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// boilerplateTags are dropped outright during extraction, subtree
// included. Comments are dropped by node type.
var boilerplateTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
	"iframe":   true,
	"svg":      true,
	"button":   true,
	"select":   true,
	"template": true,
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// extractMarkdown reduces rendered markup to markdown-flavored text:
// boilerplate stripped, tables and in-text links preserved. An empty
// return means the page had no extractable main content.
func extractMarkdown(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	root := contentRoot(doc)
	var b strings.Builder
	writeBlocks(&b, root)

	out := strings.TrimSpace(blankLines.ReplaceAllString(b.String(), "\n\n"))
	return out, nil
}

// contentRoot prefers <article> then <main> over the whole body, which
// sheds most site chrome before any per-tag filtering.
func contentRoot(doc *html.Node) *html.Node {
	if n := findElement(doc, "article"); n != nil {
		return n
	}
	if n := findElement(doc, "main"); n != nil {
		return n
	}
	if n := findElement(doc, "body"); n != nil {
		return n
	}
	return doc
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// writeBlocks walks block-level structure and emits markdown.
func writeBlocks(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
		return
	case html.ElementNode:
		if boilerplateTags[n.Data] {
			return
		}
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		b.WriteString("\n" + strings.Repeat("#", level) + " " + inlineText(n) + "\n\n")
	case "p":
		if text := inlineText(n); text != "" {
			b.WriteString("\n" + text + "\n")
		}
	case "ul", "ol":
		writeList(b, n, n.Data == "ol")
	case "table":
		writeTable(b, n)
	case "pre":
		b.WriteString("\n```\n" + strings.TrimRight(rawText(n), "\n") + "\n```\n")
	case "blockquote":
		if text := inlineText(n); text != "" {
			b.WriteString("\n> " + text + "\n")
		}
	case "br":
		b.WriteString("\n")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeBlocks(b, c)
		}
	}
}

// writeList emits top-level items; nested lists indent.
func writeList(b *strings.Builder, n *html.Node, ordered bool) {
	b.WriteString("\n")
	index := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		marker := "- "
		if ordered {
			marker = strconv.Itoa(index) + ". "
			index++
		}
		b.WriteString(marker + inlineText(c) + "\n")

		// Nested lists under this item.
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if gc.Type == html.ElementNode && (gc.Data == "ul" || gc.Data == "ol") {
				var nested strings.Builder
				writeList(&nested, gc, gc.Data == "ol")
				for _, line := range strings.Split(strings.TrimSpace(nested.String()), "\n") {
					if line != "" {
						b.WriteString("  " + line + "\n")
					}
				}
			}
		}
	}
}

// writeTable emits a markdown table, adding the header separator after
// the first row.
func writeTable(b *strings.Builder, n *html.Node) {
	var rows [][]string
	collectRows(n, &rows)
	if len(rows) == 0 {
		return
	}

	b.WriteString("\n")
	for i, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		if i == 0 {
			seps := make([]string, len(row))
			for j := range seps {
				seps[j] = "---"
			}
			b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
	}
}

func collectRows(n *html.Node, rows *[][]string) {
	if n.Type == html.ElementNode && n.Data == "tr" {
		var row []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				row = append(row, strings.ReplaceAll(inlineText(c), "|", "\\|"))
			}
		}
		if len(row) > 0 {
			*rows = append(*rows, row)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectRows(c, rows)
	}
}

// inlineText flattens inline content, keeping links as [text](href) and
// emphasis markers.
func inlineText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInline(&b, c)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeInline(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if boilerplateTags[n.Data] {
			return
		}
	}

	switch n.Data {
	case "a":
		text := inlineText(n)
		href := attr(n, "href")
		switch {
		case text == "":
			return
		case href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:"):
			b.WriteString(text)
		default:
			b.WriteString("[" + text + "](" + href + ")")
		}
		b.WriteString(" ")
	case "strong", "b":
		if text := inlineText(n); text != "" {
			b.WriteString("**" + text + "** ")
		}
	case "em", "i":
		if text := inlineText(n); text != "" {
			b.WriteString("*" + text + "* ")
		}
	case "code":
		if text := rawText(n); text != "" {
			b.WriteString("`" + text + "` ")
		}
	case "br":
		b.WriteString(" ")
	case "ul", "ol", "table":
		// Block content inside an inline context: flatten to plain text.
		b.WriteString(rawText(n) + " ")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeInline(b, c)
		}
	}
}

// rawText returns the concatenated text content with no markup.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && boilerplateTags[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
