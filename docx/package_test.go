package docx_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"papergen/docx"
	"papergen/docx/docxtest"
)

func TestRoundTrip(t *testing.T) {
	pkg := docxtest.Open(t,
		docxtest.Para("引    言", "1"),
		docxtest.Runs("本文", "研究"),
		docxtest.Table("c"),
	)
	p, err := pkg.Document().InsertBefore(1)
	if err != nil {
		t.Fatal(err)
	}
	p.AddRun("新段落 & <tag>", docx.RunFormat{Bold: true})

	data, err := pkg.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	again, err := docx.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading saved package: %v", err)
	}
	want := []string{"引    言", "新段落 & <tag>", "本文研究", "c"}
	if got := docxtest.Texts(again.Document()); !slices.Equal(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
	if !slices.Equal(again.PartNames(), pkg.PartNames()) {
		t.Errorf("parts changed: %v -> %v", pkg.PartNames(), again.PartNames())
	}
	if got := readPart(t, again, "word/document.xml"); !strings.Contains(got, "<w:sectPr>") {
		t.Error("section properties lost")
	}
}

func TestSave(t *testing.T) {
	for _, fixZip := range []bool{false, true} {
		name := "plain"
		if fixZip {
			name = "fixzip"
		}
		t.Run(name, func(t *testing.T) {
			pkg := docxtest.Open(t, docxtest.Para("致    谢", "1"))
			out := filepath.Join(t.TempDir(), "nested", "thesis.docx")
			if err := pkg.Save(out, fixZip); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			loaded, err := docx.Open(out)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if got := loaded.Document().Text(0); got != "致    谢" {
				t.Errorf("Text(0) = %q", got)
			}
			entries, err := os.ReadDir(filepath.Dir(out))
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 {
				t.Errorf("temporary files left behind: %v", entries)
			}
		})
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		parts map[string]string
	}{
		{"no content types", map[string]string{"word/document.xml": docxtest.Document()}},
		{"no main part", map[string]string{"[Content_Types].xml": "<Types/>"}},
		{"not a document", map[string]string{
			"[Content_Types].xml": "<Types/>",
			"word/document.xml":   "<root/>",
		}},
		{"no body", map[string]string{
			"[Content_Types].xml": "<Types/>",
			"word/document.xml":   `<w:document xmlns:w="urn:w"/>`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := docxtest.Zip(tt.parts)
			_, err := docx.Read(bytes.NewReader(data), int64(len(data)))
			if !errors.Is(err, docx.ErrInvalidPackage) {
				t.Errorf("expected ErrInvalidPackage, got %v", err)
			}
		})
	}

	if _, err := docx.Read(bytes.NewReader([]byte("junk")), 4); err == nil {
		t.Error("expected error for non zip input")
	}
}

func TestAddPicture(t *testing.T) {
	pkg := docxtest.Open(t, docxtest.Para("图", ""))
	d := pkg.Document()
	p, err := d.InsertBefore(0)
	if err != nil {
		t.Fatal(err)
	}
	pic := docx.Picture{
		Data:        []byte("\x89PNG fake"),
		Ext:         "png",
		ContentType: "image/png",
		CX:          14 * docx.EMUPerCm,
		CY:          7 * docx.EMUPerCm,
	}
	for range 2 {
		if err := d.AddPicture(p, pic); err != nil {
			t.Fatalf("AddPicture() error = %v", err)
		}
	}

	names := pkg.PartNames()
	for _, want := range []string{"word/media/image1.png", "word/media/image2.png"} {
		if !slices.Contains(names, want) {
			t.Errorf("part %s missing in %v", want, names)
		}
	}
	rels := readPart(t, pkg, "word/_rels/document.xml.rels")
	if !strings.Contains(rels, `Id="rId2"`) || !strings.Contains(rels, `Target="media/image2.png"`) {
		t.Errorf("relationships not registered: %s", rels)
	}
	types := readPart(t, pkg, "[Content_Types].xml")
	if strings.Count(types, `Extension="png"`) != 1 {
		t.Errorf("content type must be registered once: %s", types)
	}
	doc := readPart(t, pkg, "word/document.xml")
	if !strings.Contains(doc, `<wp:extent cx="5040000" cy="2520000"/>`) {
		t.Errorf("extent not found in %s", doc)
	}
	if !strings.Contains(doc, `xmlns:wp=`) || strings.Count(doc, `<wp:docPr id=`) != 2 {
		t.Errorf("drawing markup incomplete: %s", doc)
	}

	if err := d.AddPicture(p, docx.Picture{Ext: "png"}); err == nil {
		t.Error("expected error for empty picture")
	}
}
