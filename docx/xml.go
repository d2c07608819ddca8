package docx

import (
	"slices"

	"github.com/beevik/etree"
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	relTypeImage = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeStyle = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

// Schema order of child elements for property containers we modify. Word
// refuses to open documents where these are out of order.
var (
	orderPPr = []string{
		"w:pStyle", "w:keepNext", "w:keepLines", "w:pageBreakBefore", "w:framePr",
		"w:widowControl", "w:numPr", "w:suppressLineNumbers", "w:pBdr", "w:shd",
		"w:tabs", "w:suppressAutoHyphens", "w:kinsoku", "w:wordWrap", "w:overflowPunct",
		"w:topLinePunct", "w:autoSpaceDE", "w:autoSpaceDN", "w:bidi", "w:adjustRightInd",
		"w:snapToGrid", "w:spacing", "w:ind", "w:contextualSpacing", "w:mirrorIndents",
		"w:suppressOverlap", "w:jc", "w:textDirection", "w:textAlignment",
		"w:textboxTightWrap", "w:outlineLvl", "w:divId", "w:cnfStyle", "w:rPr",
		"w:sectPr", "w:pPrChange",
	}
	orderRPr = []string{
		"w:rStyle", "w:rFonts", "w:b", "w:bCs", "w:i", "w:iCs", "w:caps", "w:smallCaps",
		"w:strike", "w:dstrike", "w:outline", "w:shadow", "w:emboss", "w:imprint",
		"w:noProof", "w:snapToGrid", "w:vanish", "w:webHidden", "w:color", "w:spacing",
		"w:w", "w:kern", "w:position", "w:sz", "w:szCs", "w:highlight", "w:u",
		"w:effect", "w:bdr", "w:shd", "w:fitText", "w:vertAlign",
	}
	orderTcPr = []string{
		"w:cnfStyle", "w:tcW", "w:gridSpan", "w:hMerge", "w:vMerge", "w:tcBorders",
		"w:shd", "w:noWrap", "w:tcMar", "w:textDirection", "w:tcFitText", "w:vAlign",
		"w:hideMark",
	}
	orderTcBorders = []string{
		"w:top", "w:start", "w:left", "w:bottom", "w:end", "w:right",
		"w:insideH", "w:insideV", "w:tl2br", "w:tr2bl",
	}
)

func is(el *etree.Element, tag string) bool {
	return el != nil && el.FullTag() == tag
}

// child returns first direct child with the tag.
func child(parent *etree.Element, tag string) *etree.Element {
	for _, c := range parent.ChildElements() {
		if is(c, tag) {
			return c
		}
	}
	return nil
}

// ensureChild returns existing child or creates one at the place dictated by
// order. Tags missing from order are appended.
func ensureChild(parent *etree.Element, tag string, order []string) *etree.Element {
	if c := child(parent, tag); c != nil {
		return c
	}
	el := etree.NewElement(tag)
	rank := slices.Index(order, tag)
	if rank >= 0 {
		for _, c := range parent.ChildElements() {
			if r := slices.Index(order, c.FullTag()); r > rank {
				parent.InsertChildAt(c.Index(), el)
				return el
			}
		}
	}
	parent.AddChild(el)
	return el
}

// ensureFirstChild returns existing child or inserts new one in front of all
// other children. Used for property containers (w:pPr, w:rPr, w:tcPr) which
// must come first.
func ensureFirstChild(parent *etree.Element, tag string) *etree.Element {
	if c := child(parent, tag); c != nil {
		return c
	}
	el := etree.NewElement(tag)
	if first := parent.ChildElements(); len(first) > 0 {
		parent.InsertChildAt(first[0].Index(), el)
	} else {
		parent.AddChild(el)
	}
	return el
}

// ensureNamespace declares prefix on root if it is missing.
func ensureNamespace(root *etree.Element, prefix, uri string) {
	if root.SelectAttr("xmlns:"+prefix) == nil {
		root.CreateAttr("xmlns:"+prefix, uri)
	}
}
