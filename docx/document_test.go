package docx_test

import (
	"errors"
	"slices"
	"testing"

	"papergen/docx"
	"papergen/docx/docxtest"
)

func sampleDoc(t *testing.T) *docx.Document {
	t.Helper()
	return docxtest.Open(t,
		docxtest.Para("目    录", ""),
		docxtest.Para("引    言", "TOC1"),
		docxtest.Para("结    论", "TOC1"),
		docxtest.Para("引    言", "1"),
		docxtest.Para("boilerplate 1", ""),
		docxtest.Para("boilerplate 2", ""),
		docxtest.Table("a", "b"),
		docxtest.Para("结    论", "1"),
		docxtest.Para("end", ""),
	).Document()
}

func TestSequence(t *testing.T) {
	d := sampleDoc(t)
	if got := d.Len(); got != 9 {
		t.Fatalf("Len() = %d, want 9", got)
	}
	if got := d.Text(6); got != "a\nb" {
		t.Errorf("table text = %q", got)
	}
	if !d.IsTable(6) || d.IsTable(5) {
		t.Error("IsTable misreports sequence elements")
	}
	tests := []struct {
		pos  int
		want string
	}{
		{0, "Normal"},
		{1, "TOC 1"},
		{3, "Heading 1"},
		{99, ""},
	}
	for _, tt := range tests {
		if got := d.StyleName(tt.pos); got != tt.want {
			t.Errorf("StyleName(%d) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestFindAnchor(t *testing.T) {
	d := sampleDoc(t)

	tests := []struct {
		name  string
		text  string
		style string
		want  int
	}{
		{"first match wins", "引    言", "", 2},
		{"style filter skips toc", "引    言", "Heading 1", 4},
		{"internal style name", "结    论", "heading 1", 8},
		{"substring", "plate 2", "", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.FindAnchor(tt.text, tt.style)
			if err != nil {
				t.Fatalf("FindAnchor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindAnchor() = %d, want %d", got, tt.want)
			}
		})
	}

	_, err := d.FindAnchor("附录A", "")
	if !errors.Is(err, docx.ErrAnchorNotFound) {
		t.Fatalf("expected ErrAnchorNotFound, got %v", err)
	}
	var ae *docx.AnchorError
	if !errors.As(err, &ae) || ae.Text != "附录A" {
		t.Errorf("expected AnchorError for anchor text, got %#v", err)
	}
}

func TestInsertBefore(t *testing.T) {
	d := sampleDoc(t)
	n := d.Len()

	p, err := d.InsertBefore(4)
	if err != nil {
		t.Fatalf("InsertBefore() error = %v", err)
	}
	p.AddRun("inserted", docx.RunFormat{})
	if d.Len() != n+1 {
		t.Errorf("Len() = %d, want %d", d.Len(), n+1)
	}
	if got := d.Text(4); got != "inserted" {
		t.Errorf("Text(4) = %q", got)
	}
	if got := d.Text(5); got != "boilerplate 1" {
		t.Errorf("element following insertion = %q", got)
	}

	last, err := d.InsertBefore(d.Len())
	if err != nil {
		t.Fatalf("InsertBefore(Len) error = %v", err)
	}
	last.AddRun("tail", docx.RunFormat{Bold: true})
	if got := d.Text(d.Len() - 1); got != "tail" {
		t.Errorf("appended paragraph text = %q", got)
	}

	for _, pos := range []int{-1, d.Len() + 1} {
		if _, err := d.InsertBefore(pos); !errors.Is(err, docx.ErrPositionOutOfRange) {
			t.Errorf("InsertBefore(%d) error = %v, want ErrPositionOutOfRange", pos, err)
		}
	}
}

func TestDeleteAtInvalidatesHandle(t *testing.T) {
	d := sampleDoc(t)
	p, err := d.Paragraph(4)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteAt(4); err != nil {
		t.Fatal(err)
	}
	if got := d.Text(4); got != "boilerplate 2" {
		t.Errorf("Text(4) after delete = %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic when using deleted paragraph")
		}
	}()
	_ = p.Text()
}

func TestParagraphOnTable(t *testing.T) {
	d := sampleDoc(t)
	if _, err := d.Paragraph(6); !errors.Is(err, docx.ErrNotParagraph) {
		t.Errorf("Paragraph(table) error = %v", err)
	}
	if _, err := d.Paragraph(d.Len()); !errors.Is(err, docx.ErrPositionOutOfRange) {
		t.Errorf("Paragraph(Len) error = %v", err)
	}
}

func TestTrimUntil(t *testing.T) {
	t.Run("stop keyword with lookahead", func(t *testing.T) {
		d := sampleDoc(t)
		n, err := d.TrimUntil(4, 1, "结    论")
		if err != nil {
			t.Fatal(err)
		}
		if n != 2 {
			t.Errorf("deleted %d elements, want 2", n)
		}
		want := []string{"目    录", "引    言", "结    论", "引    言", "a\nb", "结    论", "end"}
		if got := docxtest.Texts(d); !slices.Equal(got, want) {
			t.Errorf("sequence = %q, want %q", got, want)
		}
	})

	t.Run("runs to the end", func(t *testing.T) {
		d := sampleDoc(t)
		if _, err := d.TrimUntil(4, 0, "never matches"); err != nil {
			t.Fatal(err)
		}
		if d.Len() != 5 || d.Text(4) != "end" {
			t.Errorf("expected single element after offset, got %q", docxtest.Texts(d))
		}
	})

	t.Run("stop condition function", func(t *testing.T) {
		d := sampleDoc(t)
		n, err := d.TrimUntilFunc(4, 1, func(text string) bool { return text == "end" })
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"目    录", "引    言", "结    论", "引    言", "结    论", "end"}
		if got := docxtest.Texts(d); n != 3 || !slices.Equal(got, want) {
			t.Errorf("deleted %d, sequence = %q, want 3 and %q", n, got, want)
		}
	})

	t.Run("position outside", func(t *testing.T) {
		d := sampleDoc(t)
		if _, err := d.TrimUntil(d.Len(), 0, "x"); !errors.Is(err, docx.ErrPositionOutOfRange) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestStripTables(t *testing.T) {
	d := sampleDoc(t)
	if n := d.StripTables(); n != 1 {
		t.Errorf("StripTables() = %d, want 1", n)
	}
	if d.Len() != 8 {
		t.Errorf("Len() = %d after strip", d.Len())
	}
}

func TestParagraphFormatting(t *testing.T) {
	d := sampleDoc(t)
	p, err := d.InsertBefore(0)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := d.ResolveStyle("Heading 2")
	if err != nil {
		t.Fatal(err)
	}
	p.SetStyle(h2)
	p.SetAlignment(docx.AlignCenter)
	p.SetFirstLineIndent(2)
	p.AddRun("a\tb", docx.RunFormat{})
	p.AddBreak()
	p.AddRun(" c ", docx.RunFormat{Italic: true})

	if got := p.StyleName(); got != "Heading 2" {
		t.Errorf("StyleName() = %q", got)
	}
	if got := p.Text(); got != "a\tb\n c " {
		t.Errorf("Text() = %q", got)
	}
	runs := p.Runs()
	if len(runs) != 3 {
		t.Fatalf("got %d runs", len(runs))
	}
	runs[2].SetText("d")
	p.TruncateRuns(1)
	if got := p.Text(); got != "a\tb" {
		t.Errorf("Text() after truncate = %q", got)
	}
}

func TestDump(t *testing.T) {
	d := docxtest.Open(t, docxtest.Para("引    言", "1"), docxtest.Table("x")).Document()
	want := "[0] paragraph \"Heading 1\"\n  text: \"引    言\"\n[1] table \"\"\n  text: \"x\"\n"
	if got := d.Dump(); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
