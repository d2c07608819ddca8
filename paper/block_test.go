package paper

import (
	"errors"
	"slices"
	"testing"

	"papergen/docx/docxtest"
)

func TestBlockRenderOrder(t *testing.T) {
	x, err := NewSection("X", 1)
	if err != nil {
		t.Fatal(err)
	}
	y, err := NewSection("Y", 2)
	if err != nil {
		t.Fatal(err)
	}
	x.AddContent(PlainText("a")).AddChild(y.AddContent(PlainText("b")))

	r, _ := newRenderer(t, docxtest.Para("end", ""))
	next, err := x.Render(r, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != 5 {
		t.Errorf("next cursor = %d, want 5", next)
	}
	wantText := []string{"\n", "X", "a", "Y", "b", "end"}
	if got := texts(r); !slices.Equal(got, wantText) {
		t.Errorf("texts = %q, want %q", got, wantText)
	}
	wantStyles := []string{"Normal", "Heading 1", "Normal", "Heading 2", "Normal"}
	for i, want := range wantStyles {
		if got := r.Doc.StyleName(i); got != want {
			t.Errorf("StyleName(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestBlockWithoutTitle(t *testing.T) {
	b := NewBlock().AddContent(PlainText("only"))
	r, _ := newRenderer(t, docxtest.Para("end", ""))
	next, err := b.Render(r, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != 1 || r.Doc.Text(0) != "only" {
		t.Errorf("untitled block rendered %q", texts(r))
	}
}

func TestBlockTitleWithoutLevel(t *testing.T) {
	b := NewBlock().SetTitle("小结").AddContent(PlainText("text"))
	r, _ := newRenderer(t, docxtest.Para("end", ""))
	next, err := b.Render(r, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"小结", "text", "end"}; next != 2 || !slices.Equal(texts(r), want) {
		t.Fatalf("next = %d, texts = %q, want 2 and %q", next, texts(r), want)
	}
	if got := r.Doc.StyleName(0); got != "Normal" {
		t.Errorf("title style = %q, want Normal", got)
	}
}

func TestBlockHeadingID(t *testing.T) {
	b, err := NewSection("方法", 2)
	if err != nil {
		t.Fatal(err)
	}
	b.SetID("2.1")
	r, _ := newRenderer(t, docxtest.Para("end", ""))
	if _, err := b.Render(r, 0); err != nil {
		t.Fatal(err)
	}
	// no page break for level 2
	if got := r.Doc.Text(0); got != "2.1  方法" {
		t.Errorf("heading = %q", got)
	}
}

func TestSetLevel(t *testing.T) {
	for _, level := range []int{-1, 5} {
		if err := NewBlock().SetLevel(level); !errors.Is(err, ErrInvalidHeadingLevel) {
			t.Errorf("SetLevel(%d) error = %v", level, err)
		}
	}
	if _, err := NewSection("t", 7); !errors.Is(err, ErrInvalidHeadingLevel) {
		t.Errorf("NewSection() error = %v", err)
	}
}

func TestBlockIsEmpty(t *testing.T) {
	var nilBlock *Block
	if !nilBlock.IsEmpty() || !NewBlock().IsEmpty() || !NewBlock().AddChild(NewBlock()).IsEmpty() {
		t.Error("blocks without content must be empty")
	}
	if NewBlock().AddChild(NewBlock().SetTitle("t")).IsEmpty() {
		t.Error("block with titled child is not empty")
	}
}

func TestBlockString(t *testing.T) {
	ch, _ := NewSection("第一章", 1)
	ch.SetID("1").AddContent(PlainText("正文"))
	table, _ := NewTable("表1", Row{Cells: []string{"a"}})
	ch.AddContent(table, NewImage(Picture{"a.png", "图1"}))
	want := "block\n  block h1 \"1  第一章\"\n    text: \"正文\"\n    table: \"表1\" 1x1\n    image: a.png \"图1\"\n"
	if got := NewBlock().AddChild(ch).String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
