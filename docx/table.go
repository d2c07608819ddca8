package docx

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// Table is a handle to body level table.
type Table struct {
	el   *etree.Element
	doc  *Document
	rows int
	cols int
}

// InsertTableBefore creates empty rows x cols table at sequence position.
// Table occupies single element of the sequence.
func (d *Document) InsertTableBefore(pos, rows, cols int) (*Table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid table dimensions %dx%d", rows, cols)
	}
	el := etree.NewElement("w:tbl")
	tblPr := el.CreateElement("w:tblPr")
	w := tblPr.CreateElement("w:tblW")
	w.CreateAttr("w:w", "0")
	w.CreateAttr("w:type", "auto")
	tblPr.CreateElement("w:jc").CreateAttr("w:val", "center")
	grid := el.CreateElement("w:tblGrid")
	for range cols {
		grid.CreateElement("w:gridCol")
	}
	for range rows {
		tr := el.CreateElement("w:tr")
		for range cols {
			tc := tr.CreateElement("w:tc")
			tcW := tc.CreateElement("w:tcPr").CreateElement("w:tcW")
			tcW.CreateAttr("w:w", "0")
			tcW.CreateAttr("w:type", "auto")
			tc.CreateElement("w:p")
		}
	}
	if err := d.insert(pos, el); err != nil {
		return nil, err
	}
	return &Table{el: el, doc: d, rows: rows, cols: cols}, nil
}

// Rows returns number of table rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns number of table columns.
func (t *Table) Cols() int { return t.cols }

// SetStyle applies table style.
func (t *Table) SetStyle(s Style) {
	tblPr := ensureFirstChild(t.el, "w:tblPr")
	ensureFirstChild(tblPr, "w:tblStyle").CreateAttr("w:val", s.ID)
}

// Cell returns cell at row r and column c. Panics when out of range.
func (t *Table) Cell(r, c int) *Cell {
	if r < 0 || r >= t.rows || c < 0 || c >= t.cols {
		panic(fmt.Sprintf("docx: cell (%d, %d) outside of %dx%d table", r, c, t.rows, t.cols))
	}
	tr := t.el.SelectElements("w:tr")[r]
	return &Cell{el: tr.SelectElements("w:tc")[c], doc: t.doc}
}

// Cell is a table cell.
type Cell struct {
	el  *etree.Element
	doc *Document
}

// Paragraph returns first paragraph of the cell.
func (c *Cell) Paragraph() *Paragraph {
	p := child(c.el, "w:p")
	if p == nil {
		p = c.el.CreateElement("w:p")
	}
	return &Paragraph{el: p, doc: c.doc}
}

// SetText replaces cell paragraph runs with single run of text.
func (c *Cell) SetText(text string) *Paragraph {
	p := c.Paragraph()
	p.TruncateRuns(0)
	p.AddRun(text, RunFormat{})
	return p
}

// Border describes single cell edge. Val follows ST_Border ("single",
// "double", "nil"...), Size is in eighths of a point.
type Border struct {
	Val   string
	Size  int
	Color string
	Space int
}

// NoBorder hides cell edge regardless of table style.
var NoBorder = Border{Val: "nil"}

// SingleBorder is a solid black line of given size.
func SingleBorder(size int) Border {
	return Border{Val: "single", Size: size, Color: "000000"}
}

// Borders selects cell edges to modify, nil edges are left alone.
type Borders struct {
	Top    *Border
	Left   *Border
	Bottom *Border
	Right  *Border
}

// SetBorders sets cell edges. Existing border elements are updated in place,
// so repeated calls produce identical markup.
func (c *Cell) SetBorders(b Borders) {
	tcPr := ensureFirstChild(c.el, "w:tcPr")
	tcBorders := ensureChild(tcPr, "w:tcBorders", orderTcPr)
	for _, edge := range []struct {
		tag string
		b   *Border
	}{
		{"w:top", b.Top},
		{"w:left", b.Left},
		{"w:bottom", b.Bottom},
		{"w:right", b.Right},
	} {
		if edge.b == nil {
			continue
		}
		el := ensureChild(tcBorders, edge.tag, orderTcBorders)
		el.CreateAttr("w:val", edge.b.Val)
		if edge.b.Val == NoBorder.Val {
			el.RemoveAttr("w:sz")
			el.RemoveAttr("w:space")
			el.RemoveAttr("w:color")
			continue
		}
		el.CreateAttr("w:sz", strconv.Itoa(edge.b.Size))
		el.CreateAttr("w:space", strconv.Itoa(edge.b.Space))
		color := edge.b.Color
		if color == "" {
			color = "auto"
		}
		el.CreateAttr("w:color", color)
	}
}
