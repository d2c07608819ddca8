package docx

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Document is the editable main part of a docx package. Its paragraph
// sequence consists of body level paragraphs and tables in document order,
// final section properties are not part of it.
type Document struct {
	pkg    *Package
	xml    *etree.Document
	body   *etree.Element
	styles *Styles

	// handles issued for sequence elements, invalidated on deletion
	handles map[*etree.Element]*Paragraph

	nextDrawingID int
}

func newDocument(pkg *Package, doc *etree.Document, styles *Styles) (*Document, error) {
	root := doc.Root()
	if !is(root, "w:document") {
		return nil, fmt.Errorf("%w: main part root is not w:document", ErrInvalidPackage)
	}
	body := child(root, "w:body")
	if body == nil {
		return nil, fmt.Errorf("%w: document has no body", ErrInvalidPackage)
	}
	d := &Document{
		pkg:     pkg,
		xml:     doc,
		body:    body,
		styles:  styles,
		handles: make(map[*etree.Element]*Paragraph),
	}
	d.nextDrawingID = maxDrawingID(root) + 1
	return d, nil
}

func isBlock(el *etree.Element) bool {
	return is(el, "w:p") || is(el, "w:tbl")
}

// blocks returns current paragraph sequence.
func (d *Document) blocks() []*etree.Element {
	var res []*etree.Element
	for _, c := range d.body.ChildElements() {
		if isBlock(c) {
			res = append(res, c)
		}
	}
	return res
}

func (d *Document) at(pos int) (*etree.Element, error) {
	blocks := d.blocks()
	if pos < 0 || pos >= len(blocks) {
		return nil, outOfRange(pos, len(blocks)-1)
	}
	return blocks[pos], nil
}

// Styles returns style definitions of the template.
func (d *Document) Styles() *Styles {
	return d.styles
}

// ResolveStyle finds style definition by name.
func (d *Document) ResolveStyle(name string) (Style, error) {
	return d.styles.Resolve(name)
}

// Len returns number of elements in paragraph sequence.
func (d *Document) Len() int {
	return len(d.blocks())
}

// Text returns text of sequence element. Table text is text of its
// paragraphs separated by new lines.
func (d *Document) Text(pos int) string {
	el, err := d.at(pos)
	if err != nil {
		return ""
	}
	return blockText(el)
}

// StyleName returns UI name of the sequence element style.
func (d *Document) StyleName(pos int) string {
	el, err := d.at(pos)
	if err != nil {
		return ""
	}
	return d.styleName(el)
}

// IsTable reports whether sequence element is a table.
func (d *Document) IsTable(pos int) bool {
	el, err := d.at(pos)
	return err == nil && is(el, "w:tbl")
}

func (d *Document) styleName(el *etree.Element) string {
	switch {
	case is(el, "w:p"):
		return d.styles.nameOf(propVal(el, "w:pPr", "w:pStyle"))
	case is(el, "w:tbl"):
		if id := propVal(el, "w:tblPr", "w:tblStyle"); id != "" {
			return d.styles.nameOf(id)
		}
	}
	return ""
}

func propVal(el *etree.Element, container, prop string) string {
	if pr := child(el, container); pr != nil {
		if v := child(pr, prop); v != nil {
			return v.SelectAttrValue("w:val", "")
		}
	}
	return ""
}

// Paragraph returns handle for the paragraph at position.
func (d *Document) Paragraph(pos int) (*Paragraph, error) {
	el, err := d.at(pos)
	if err != nil {
		return nil, err
	}
	if !is(el, "w:p") {
		return nil, fmt.Errorf("%w: position %d", ErrNotParagraph, pos)
	}
	return d.handle(el), nil
}

func (d *Document) handle(el *etree.Element) *Paragraph {
	if h, ok := d.handles[el]; ok {
		return h
	}
	h := &Paragraph{el: el, doc: d}
	d.handles[el] = h
	return h
}

// Find returns position of the first sequence element at or after from for
// which match returns true.
func (d *Document) Find(from int, match func(text, style string) bool) (int, bool) {
	for i, el := range d.blocks() {
		if i < from {
			continue
		}
		if match(blockText(el), d.styleName(el)) {
			return i, true
		}
	}
	return -1, false
}

// FindAnchor returns position immediately after the first paragraph which text
// contains anchor. When style is not empty paragraph style must match it too.
func (d *Document) FindAnchor(text, style string) (int, error) {
	pos, ok := d.Find(0, func(t, s string) bool {
		return strings.Contains(t, text) && (style == "" || s == uiName(style))
	})
	if !ok {
		return 0, &AnchorError{Text: text, Style: style}
	}
	return pos + 1, nil
}

// InsertBefore creates empty paragraph at position. Position equal to
// sequence length appends paragraph at the end of the body (before final
// section properties).
func (d *Document) InsertBefore(pos int) (*Paragraph, error) {
	el := etree.NewElement("w:p")
	if err := d.insert(pos, el); err != nil {
		return nil, err
	}
	return d.handle(el), nil
}

func (d *Document) insert(pos int, el *etree.Element) error {
	blocks := d.blocks()
	if pos < 0 || pos > len(blocks) {
		return outOfRange(pos, len(blocks))
	}
	if pos < len(blocks) {
		d.body.InsertChildAt(blocks[pos].Index(), el)
		return nil
	}
	if sect := child(d.body, "w:sectPr"); sect != nil {
		d.body.InsertChildAt(sect.Index(), el)
		return nil
	}
	d.body.AddChild(el)
	return nil
}

// DeleteAt removes sequence element at position. Handles previously obtained
// for it become unusable.
func (d *Document) DeleteAt(pos int) error {
	el, err := d.at(pos)
	if err != nil {
		return err
	}
	d.remove(el)
	return nil
}

func (d *Document) remove(el *etree.Element) {
	d.body.RemoveChild(el)
	if h, ok := d.handles[el]; ok {
		h.el = nil
		delete(d.handles, el)
	}
}

// TrimUntil deletes element at offset for as long as element at
// offset+lookahead does not contain stop and is not the last one in the
// sequence. Returns number of deleted elements.
func (d *Document) TrimUntil(offset, lookahead int, stop string) (int, error) {
	return d.TrimUntilFunc(offset, lookahead, func(text string) bool {
		return strings.Contains(text, stop)
	})
}

// TrimUntilFunc is TrimUntil with stop condition checked by stop.
func (d *Document) TrimUntilFunc(offset, lookahead int, stop func(text string) bool) (int, error) {
	var deleted int
	for {
		blocks := d.blocks()
		check := offset + lookahead
		if offset < 0 || check < 0 || check >= len(blocks) {
			return deleted, outOfRange(check, len(blocks)-1)
		}
		if stop(blockText(blocks[check])) || check == len(blocks)-1 {
			return deleted, nil
		}
		d.remove(blocks[offset])
		deleted++
	}
}

// StripTables removes all body level tables. Returns number of removed tables.
func (d *Document) StripTables() int {
	var n int
	for _, el := range d.blocks() {
		if is(el, "w:tbl") {
			d.remove(el)
			n++
		}
	}
	return n
}

func blockText(el *etree.Element) string {
	if is(el, "w:tbl") {
		var lines []string
		for _, p := range el.FindElements(".//w:p") {
			lines = append(lines, paragraphText(p))
		}
		return strings.Join(lines, "\n")
	}
	return paragraphText(el)
}

func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			switch c.FullTag() {
			case "w:t":
				sb.WriteString(c.Text())
			case "w:tab":
				sb.WriteByte('\t')
			case "w:br", "w:cr":
				sb.WriteByte('\n')
			case "w:pPr", "w:rPr", "w:del", "w:drawing", "w:instrText":
			default:
				walk(c)
			}
		}
	}
	walk(p)
	return sb.String()
}
