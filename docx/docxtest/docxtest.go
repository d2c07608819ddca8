// Package docxtest builds small in-memory docx packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"maps"
	"slices"
	"testing"

	"papergen/docx"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/></Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

// Styles defines default paragraph style, four heading levels, caption, TOC
// and bibliography styles the way Word stores them.
const Styles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="a"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="1"><w:name w:val="heading 1"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="2"><w:name w:val="heading 2"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="3"><w:name w:val="heading 3"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="4"><w:name w:val="heading 4"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Caption"><w:name w:val="caption"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="TOC1"><w:name w:val="toc 1"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Bib"><w:name w:val="参考文献正文"/></w:style>` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>` +
	`</w:styles>`

const sectPr = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`

// Para returns body paragraph with single run. Empty styleID leaves paragraph
// in default style.
func Para(text, styleID string) string {
	var pPr string
	if styleID != "" {
		pPr = fmt.Sprintf(`<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, styleID)
	}
	return fmt.Sprintf(`<w:p>%s<w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, pPr, html.EscapeString(text))
}

// TOCEntry returns table of contents line the way Word writes TOC field
// results: hyperlink with title, tab and page number in "toc 1" style.
func TOCEntry(title string, page int) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:pStyle w:val="TOC1"/></w:pPr><w:hyperlink w:anchor="_Toc%d" w:history="1">`+
		`<w:r><w:t xml:space="preserve">%s</w:t></w:r><w:r><w:tab/></w:r><w:r><w:t>%d</w:t></w:r></w:hyperlink></w:p>`,
		page, html.EscapeString(title), page)
}

// Runs returns paragraph in default style with one run per text.
func Runs(texts ...string) string {
	var buf bytes.Buffer
	buf.WriteString("<w:p>")
	for _, t := range texts {
		fmt.Fprintf(&buf, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, html.EscapeString(t))
	}
	buf.WriteString("</w:p>")
	return buf.String()
}

// Table returns single row table with a cell per text.
func Table(cells ...string) string {
	var buf bytes.Buffer
	buf.WriteString("<w:tbl><w:tblPr/><w:tblGrid/><w:tr>")
	for _, c := range cells {
		fmt.Fprintf(&buf, "<w:tc>%s</w:tc>", Para(c, ""))
	}
	buf.WriteString("</w:tr></w:tbl>")
	return buf.String()
}

// Document returns main document part with body elements followed by
// section properties.
func Document(body ...string) string {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	buf.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)
	for _, b := range body {
		buf.WriteString(b)
	}
	buf.WriteString(sectPr)
	buf.WriteString(`</w:body></w:document>`)
	return buf.String()
}

// Build returns docx container with the body elements.
func Build(body ...string) []byte {
	return Zip(map[string]string{
		"[Content_Types].xml":          contentTypes,
		"_rels/.rels":                  rootRels,
		"word/document.xml":            Document(body...),
		"word/_rels/document.xml.rels": documentRels,
		"word/styles.xml":              Styles,
	})
}

// Zip packs parts into archive: main parts first in fixed order, the rest
// sorted by name.
func Zip(parts map[string]string) []byte {
	main := []string{
		"[Content_Types].xml", "_rels/.rels", "word/document.xml",
		"word/_rels/document.xml.rels", "word/styles.xml",
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range main {
		if data, ok := parts[name]; ok {
			writePart(zw, name, data)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(parts)) {
		if !slices.Contains(main, name) {
			writePart(zw, name, parts[name])
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func writePart(zw *zip.Writer, name, data string) {
	w, err := zw.Create(name)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write([]byte(data)); err != nil {
		panic(err)
	}
}

// Open builds package from body elements and loads it.
func Open(t testing.TB, body ...string) *docx.Package {
	t.Helper()
	data := Build(body...)
	pkg, err := docx.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unable to load test document: %v", err)
	}
	return pkg
}

// Texts returns text of every sequence element.
func Texts(d *docx.Document) []string {
	res := make([]string, d.Len())
	for i := range res {
		res[i] = d.Text(i)
	}
	return res
}
