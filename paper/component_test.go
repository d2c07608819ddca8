package paper

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"papergen/common"
	"papergen/docx"
	"papergen/docx/docxtest"
)

func region(name common.Region) Region {
	for _, r := range DefaultRegions() {
		if r.Name == name {
			return r
		}
	}
	panic("unknown region " + name.String())
}

func TestConclusionReplacesBoilerplate(t *testing.T) {
	r, _ := newRenderer(t,
		docxtest.Para("cover", ""),
		docxtest.Para("结    论", "1"),
		docxtest.Para("boilerplate 1", ""),
		docxtest.Para("boilerplate 2", ""),
		docxtest.Para("boilerplate 3", ""),
		docxtest.Para("参 考 文 献", "1"),
		docxtest.Para("[1] ref", ""),
	)
	c := Component{Region: region(common.RegionConclusion), Root: NewBlock().AddContent(PlainText("done."))}
	end, err := c.Render(r)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"cover", "结    论", "done.", "参 考 文 献", "[1] ref"}
	if got := texts(r); !slices.Equal(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
	if end != 3 {
		t.Errorf("end = %d, want 3", end)
	}
	if got := r.Doc.StyleName(2); got != "Normal" {
		t.Errorf("body paragraph style = %q", got)
	}
}

func TestAcknowledgmentsTrimToEnd(t *testing.T) {
	r, _ := newRenderer(t,
		docxtest.Para("修改记录", "1"),
		docxtest.Para("致    谢", "1"),
		docxtest.Para("template 1", ""),
		docxtest.Para("template 2", ""),
		docxtest.Para("template 3", ""),
	)
	c := Component{Region: region(common.RegionAcknowledgments), Root: NewBlock().AddContent(PlainText("谢谢"))}
	if _, err := c.Render(r); err != nil {
		t.Fatal(err)
	}
	// trim stops with exactly one template paragraph left at the end
	want := []string{"修改记录", "致    谢", "谢谢", "template 3"}
	if got := texts(r); !slices.Equal(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestAnchorDeterminism(t *testing.T) {
	r, _ := newRenderer(t,
		docxtest.Para("目录", ""),
		docxtest.Para("引    言", "TOC1"),
		docxtest.Para("引    言", "1"),
		docxtest.Para("x", ""),
		docxtest.Para("正文格式说明", "1"),
	)
	reg := region(common.RegionIntroduction)
	first, err := r.Doc.FindAnchor(reg.Anchor, reg.StyleFilter)
	if err != nil {
		t.Fatal(err)
	}
	// unrelated edits after the anchor
	if _, err := r.Doc.InsertBefore(4); err != nil {
		t.Fatal(err)
	}
	if err := r.Doc.DeleteAt(3); err != nil {
		t.Fatal(err)
	}
	second, err := r.Doc.FindAnchor(reg.Anchor, reg.StyleFilter)
	if err != nil {
		t.Fatal(err)
	}
	if first != 3 || second != first {
		t.Errorf("anchor positions %d and %d, want 3", first, second)
	}
}

func TestReferencesRestyle(t *testing.T) {
	r, _ := newRenderer(t,
		docxtest.Para("参 考 文 献", "1"),
		docxtest.Para("[1] template", ""),
		docxtest.Para("", ""),
		docxtest.Para("附录A", "1"),
	)
	c := Component{Region: region(common.RegionReferences), Root: NewBlock().AddContent(PlainText("[1] a\n[2] b"))}
	end, err := c.Render(r)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"参 考 文 献", "[1] a", "[2] b", "", "附录A"}
	if got := texts(r); !slices.Equal(got, want) {
		t.Fatalf("texts = %q, want %q", got, want)
	}
	for i := 1; i < end; i++ {
		if got := r.Doc.StyleName(i); got != "参考文献正文" {
			t.Errorf("StyleName(%d) = %q", i, got)
		}
	}
	if got := r.Doc.StyleName(end); got == "参考文献正文" {
		t.Error("paragraph after references restyled")
	}
}

func TestRegionsSkipTableOfContents(t *testing.T) {
	tests := []struct {
		region  common.Region
		content string
		want    []string
	}{
		{
			region:  common.RegionConclusion,
			content: "done.",
			want:    []string{"目    录", "结    论\t1", "参 考 文 献\t2", "结    论", "done.", "参 考 文 献", "[1] template", "", "附录A"},
		},
		{
			region:  common.RegionReferences,
			content: "[1] ref",
			want:    []string{"目    录", "结    论\t1", "参 考 文 献\t2", "结    论", "结论模板", "参 考 文 献", "[1] ref", "", "附录A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.region.String(), func(t *testing.T) {
			r, _ := newRenderer(t,
				docxtest.Para("目    录", ""),
				docxtest.TOCEntry("结    论", 1),
				docxtest.TOCEntry("参 考 文 献", 2),
				docxtest.Para("结    论", "1"),
				docxtest.Para("结论模板", ""),
				docxtest.Para("参 考 文 献", "1"),
				docxtest.Para("[1] template", ""),
				docxtest.Para("", ""),
				docxtest.Para("附录A", "1"),
			)
			c := Component{Region: region(tt.region), Root: NewBlock().AddContent(PlainText(tt.content))}
			if _, err := c.Render(r); err != nil {
				t.Fatal(err)
			}
			if got := texts(r); !slices.Equal(got, tt.want) {
				t.Errorf("texts =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBodyRemovesAnchorHeading(t *testing.T) {
	r, _ := newRenderer(t,
		docxtest.Para("正文格式说明", "1"),
		docxtest.Para("说明", ""),
		docxtest.Para("", ""),
		docxtest.Para("结    论", "1"),
	)
	ch, err := NewSection("绪论", 1)
	if err != nil {
		t.Fatal(err)
	}
	ch.SetID("1").AddContent(PlainText("内容"))
	c := Component{Region: region(common.RegionBody), Root: NewBlock().AddChild(ch)}
	end, err := c.Render(r)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"\n", "1  绪论", "内容", "", "结    论"}
	if got := texts(r); !slices.Equal(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
	if end != 3 {
		t.Errorf("end = %d, want 3", end)
	}
}

func TestRemoveAnchorWithRepeatedText(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r, _ := newRenderer(t,
		docxtest.Para("附录A", "1"),
		docxtest.Para("", ""),
		docxtest.Para("修改记录", "1"),
	)
	r.Log = zap.New(core)
	// generated content repeats anchor text, template heading still goes
	reg := region(common.RegionAppendix)
	reg.StyleFilter = ""
	c := Component{Region: reg, Root: NewBlock().AddContent(PlainText("附录A 续"))}
	if _, err := c.Render(r); err != nil {
		t.Fatal(err)
	}
	if logs.Len() != 0 {
		t.Fatalf("unexpected warnings: %v", logs.All())
	}
	if got := texts(r); !slices.Equal(got, []string{"附录A 续", "", "修改记录"}) {
		t.Errorf("texts = %q", got)
	}
}

func TestComponentAnchorNotFound(t *testing.T) {
	r, _ := newRenderer(t, docxtest.Para("nothing here", ""))
	c := Component{Region: region(common.RegionChanges), Root: NewBlock().AddContent(PlainText("x"))}
	_, err := c.Render(r)
	if !errors.Is(err, docx.ErrAnchorNotFound) {
		t.Errorf("Render() error = %v, want ErrAnchorNotFound", err)
	}
}
