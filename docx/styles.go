package docx

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Style is a named paragraph, character or table style defined by template.
type Style struct {
	ID   string
	Name string
	Type string
}

// Styles indexes style definitions of the package.
type Styles struct {
	list             []Style
	byID             map[string]int
	defaultParagraph string
}

// Word stores names of built-in styles in lower case ("heading 1") while
// showing them capitalized. Lookups and reported names use the UI form.
var builtinNames = map[string]string{
	"normal":         "Normal",
	"caption":        "Caption",
	"title":          "Title",
	"subtitle":       "Subtitle",
	"header":         "Header",
	"footer":         "Footer",
	"body text":      "Body Text",
	"list paragraph": "List Paragraph",
	"table grid":     "Table Grid",
	"toc heading":    "TOC Heading",
}

func uiName(name string) string {
	if n, ok := builtinNames[name]; ok {
		return n
	}
	for _, prefix := range []string{"heading ", "toc "} {
		if rest, ok := strings.CutPrefix(name, prefix); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '9' {
			if prefix == "toc " {
				return "TOC " + rest
			}
			return "Heading " + rest
		}
	}
	return name
}

func parseStyles(doc *etree.Document) *Styles {
	s := &Styles{byID: make(map[string]int)}
	if doc == nil || doc.Root() == nil {
		return s
	}
	for _, el := range doc.Root().SelectElements("w:style") {
		st := Style{
			ID:   el.SelectAttrValue("w:styleId", ""),
			Type: el.SelectAttrValue("w:type", "paragraph"),
		}
		if n := el.SelectElement("w:name"); n != nil {
			st.Name = uiName(n.SelectAttrValue("w:val", ""))
		}
		if st.Name == "" {
			st.Name = st.ID
		}
		if st.ID == "" {
			continue
		}
		s.byID[st.ID] = len(s.list)
		s.list = append(s.list, st)
		if st.Type == "paragraph" && el.SelectAttrValue("w:default", "") == "1" {
			s.defaultParagraph = st.ID
		}
	}
	return s
}

// All returns style definitions in document order.
func (s *Styles) All() []Style {
	return s.list
}

// Resolve looks style up by name, case-insensitive name or style id, in that
// order.
func (s *Styles) Resolve(name string) (Style, error) {
	ui := uiName(name)
	for _, st := range s.list {
		if st.Name == ui {
			return st, nil
		}
	}
	for _, st := range s.list {
		if strings.EqualFold(st.Name, name) {
			return st, nil
		}
	}
	if i, ok := s.byID[name]; ok {
		return s.list[i], nil
	}
	return Style{}, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
}

// nameOf returns UI name for style id. Empty id means default paragraph style.
func (s *Styles) nameOf(id string) string {
	if id == "" {
		id = s.defaultParagraph
		if id == "" {
			return "Normal"
		}
	}
	if i, ok := s.byID[id]; ok {
		return s.list[i].Name
	}
	return id
}
