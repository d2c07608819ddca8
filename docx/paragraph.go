package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Alignment is paragraph justification.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignBoth
)

func (a Alignment) val() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignBoth:
		return "both"
	default:
		return "left"
	}
}

// RunFormat is direct character formatting of a run.
type RunFormat struct {
	Bold   bool
	Italic bool
}

// Paragraph is a handle to body level paragraph. Handle of deleted paragraph
// must not be used.
type Paragraph struct {
	el  *etree.Element
	doc *Document
}

func (p *Paragraph) element() *etree.Element {
	if p.el == nil {
		panic("docx: use of deleted paragraph")
	}
	return p.el
}

// Text returns paragraph text.
func (p *Paragraph) Text() string {
	return paragraphText(p.element())
}

// StyleName returns UI name of the paragraph style.
func (p *Paragraph) StyleName() string {
	return p.doc.styleName(p.element())
}

// SetStyle applies paragraph style.
func (p *Paragraph) SetStyle(s Style) {
	pPr := ensureFirstChild(p.element(), "w:pPr")
	ensureChild(pPr, "w:pStyle", orderPPr).CreateAttr("w:val", s.ID)
}

// SetAlignment sets paragraph justification.
func (p *Paragraph) SetAlignment(a Alignment) {
	pPr := ensureFirstChild(p.element(), "w:pPr")
	ensureChild(pPr, "w:jc", orderPPr).CreateAttr("w:val", a.val())
}

// SetFirstLineIndent sets first line indentation in characters.
func (p *Paragraph) SetFirstLineIndent(chars int) {
	pPr := ensureFirstChild(p.element(), "w:pPr")
	ind := ensureChild(pPr, "w:ind", orderPPr)
	ind.CreateAttr("w:firstLineChars", strconv.Itoa(chars*100))
	ind.RemoveAttr("w:hanging")
	ind.RemoveAttr("w:hangingChars")
}

// AddRun appends run with text to the paragraph. Tabs and new lines are
// converted to their run level counterparts.
func (p *Paragraph) AddRun(text string, f RunFormat) *Run {
	r := &Run{el: p.element().CreateElement("w:r")}
	if f.Bold || f.Italic {
		rPr := r.el.CreateElement("w:rPr")
		if f.Bold {
			ensureChild(rPr, "w:b", orderRPr)
		}
		if f.Italic {
			ensureChild(rPr, "w:i", orderRPr)
		}
	}
	r.setContent(text)
	return r
}

// AddBreak appends line break.
func (p *Paragraph) AddBreak() {
	p.element().CreateElement("w:r").CreateElement("w:br")
}

// AddPageBreak appends page break.
func (p *Paragraph) AddPageBreak() {
	p.element().CreateElement("w:r").CreateElement("w:br").CreateAttr("w:type", "page")
}

// Runs returns direct runs of the paragraph.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.element().ChildElements() {
		if is(c, "w:r") {
			runs = append(runs, &Run{el: c})
		}
	}
	return runs
}

// TruncateRuns keeps first n runs of the paragraph removing the rest.
func (p *Paragraph) TruncateRuns(n int) {
	el := p.element()
	for i, r := range p.Runs() {
		if i >= n {
			el.RemoveChild(r.el)
		}
	}
}

// Run is a region of text with common formatting.
type Run struct {
	el *etree.Element
}

// Text returns run text.
func (r *Run) Text() string {
	return paragraphText(r.el)
}

// SetText replaces run content keeping its formatting.
func (r *Run) SetText(text string) {
	for _, c := range r.el.ChildElements() {
		if !is(c, "w:rPr") {
			r.el.RemoveChild(c)
		}
	}
	r.setContent(text)
}

func (r *Run) setContent(text string) {
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		t := r.el.CreateElement("w:t")
		s := sb.String()
		if strings.TrimSpace(s) != s {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(s)
		sb.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.el.CreateElement("w:tab")
		case '\n':
			flush()
			r.el.CreateElement("w:br")
		default:
			sb.WriteRune(ch)
		}
	}
	flush()
}
