package paper

import (
	"fmt"
	"strings"

	"papergen/docx"
	"papergen/utils/debug"
)

// Content is a unit of block content. Render inserts paragraphs in front of
// cursor and returns cursor advanced by number of inserted sequence elements.
type Content interface {
	Render(r *Renderer, cursor int) (int, error)
	dump(tw *debug.TreeWriter, depth int)
}

// Text is a logical piece of body text, every line becomes a paragraph.
type Text struct {
	Fragments []Fragment
}

// NewText creates text content from fragments.
func NewText(frags ...Fragment) *Text {
	return &Text{Fragments: frags}
}

// PlainText creates unstyled text content.
func PlainText(s string) *Text {
	return NewText(Plain(s))
}

// Lines returns number of paragraphs text renders into.
func (t *Text) Lines() int {
	return len(splitLines(t.Fragments))
}

func (t *Text) Render(r *Renderer, cursor int) (int, error) {
	for _, line := range splitLines(t.Fragments) {
		p, err := r.insert(cursor)
		if err != nil {
			return cursor, err
		}
		p.SetStyle(r.Styles.Body)
		if r.FirstLineIndent > 0 {
			p.SetFirstLineIndent(r.FirstLineIndent)
		}
		for _, f := range line {
			p.AddRun(f.Text, docx.RunFormat{Bold: f.Bold, Italic: f.Italic})
		}
		cursor++
	}
	return cursor, nil
}

// String returns text without styling.
func (t *Text) String() string {
	var sb strings.Builder
	for _, f := range t.Fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

func (t *Text) dump(tw *debug.TreeWriter, depth int) {
	tw.Excerpt(depth, "text", t.String(), 60)
}

// Picture is an image source with its caption.
type Picture struct {
	Source  string
	Caption string
}

// Image is a list of pictures, each one rendered as separate centered
// paragraph with caption below the picture.
type Image struct {
	Pictures []Picture
}

// NewImage creates image content.
func NewImage(pics ...Picture) *Image {
	return &Image{Pictures: pics}
}

func (im *Image) Render(r *Renderer, cursor int) (int, error) {
	for _, pic := range im.Pictures {
		drawing, err := r.picture(pic.Source, pic.Caption)
		if err != nil {
			return cursor, err
		}
		p, err := r.insert(cursor)
		if err != nil {
			return cursor, err
		}
		p.SetStyle(r.Styles.ImageCaption)
		p.SetAlignment(docx.AlignCenter)
		p.AddBreak()
		if err := r.Doc.AddPicture(p, drawing); err != nil {
			return cursor, fmt.Errorf("unable to embed image %q: %w", pic.Source, err)
		}
		p.AddBreak()
		p.AddRun(pic.Caption, docx.RunFormat{})
		p.AddBreak()
		cursor++
	}
	return cursor, nil
}

func (im *Image) dump(tw *debug.TreeWriter, depth int) {
	for _, pic := range im.Pictures {
		tw.Line(depth, "image: %s %q", pic.Source, pic.Caption)
	}
}

// Row is a table row. TopBorder draws solid line above the row.
type Row struct {
	Cells     []string
	TopBorder bool
}

// Table is rendered as caption paragraph, table and blank paragraph after it.
type Table struct {
	Title string
	Rows  []Row
	cols  int
}

// NewTable validates rows: there must be at least one and all of them must
// have the same number of cells.
func NewTable(title string, rows ...Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table %q has no rows", ErrInvalidTable, title)
	}
	cols := len(rows[0].Cells)
	if cols == 0 {
		return nil, fmt.Errorf("%w: table %q has no columns", ErrInvalidTable, title)
	}
	for i, row := range rows {
		if len(row.Cells) != cols {
			return nil, fmt.Errorf("%w: table %q row %d has %d cells, expected %d", ErrInvalidTable, title, i, len(row.Cells), cols)
		}
	}
	return &Table{Title: title, Rows: rows, cols: cols}, nil
}

// Cols returns number of table columns.
func (t *Table) Cols() int {
	return t.cols
}

// Border sizes in eighths of a point.
const (
	ruleOuter = 12
	ruleInner = 6
)

func (t *Table) Render(r *Renderer, cursor int) (int, error) {
	caption, err := r.insert(cursor)
	if err != nil {
		return cursor, err
	}
	caption.SetStyle(r.Styles.TableCaption)
	caption.SetAlignment(docx.AlignCenter)
	caption.AddBreak()
	caption.AddRun(t.Title, docx.RunFormat{})
	cursor++

	tbl, err := r.Doc.InsertTableBefore(cursor, len(t.Rows), t.cols)
	if err != nil {
		return cursor, err
	}
	none := docx.NoBorder
	for i, row := range t.Rows {
		top, bottom := none, none
		if row.TopBorder {
			top = docx.SingleBorder(ruleInner)
			if i == 0 {
				top = docx.SingleBorder(ruleOuter)
			}
		}
		if i == len(t.Rows)-1 {
			bottom = docx.SingleBorder(ruleOuter)
		}
		for j, text := range row.Cells {
			cell := tbl.Cell(i, j)
			p := cell.SetText(text)
			if r.Styles.TableBody != nil {
				p.SetStyle(*r.Styles.TableBody)
			}
			p.SetAlignment(docx.AlignCenter)
			cell.SetBorders(docx.Borders{Top: &top, Left: &none, Bottom: &bottom, Right: &none})
		}
	}
	cursor++

	if _, err := r.insert(cursor); err != nil {
		return cursor, err
	}
	return cursor + 1, nil
}

func (t *Table) dump(tw *debug.TreeWriter, depth int) {
	tw.Line(depth, "table: %q %dx%d", t.Title, len(t.Rows), t.cols)
}
