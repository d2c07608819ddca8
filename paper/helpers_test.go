package paper

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"
	"testing/fstest"

	"go.uber.org/zap/zaptest"

	"papergen/docx"
	"papergen/docx/docxtest"
	"papergen/utils/images"
)

var testStyleNames = StyleNames{
	Body:         "Normal",
	Headings:     [4]string{"Heading 1", "Heading 2", "Heading 3", "Heading 4"},
	ImageCaption: "Caption",
	TableCaption: "Caption",
	Bibliography: "参考文献正文",
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newRenderer(t *testing.T, body ...string) (*Renderer, *docx.Package) {
	t.Helper()
	pkg := docxtest.Open(t, body...)
	styles, err := ResolveStyles(pkg.Document(), testStyleNames)
	if err != nil {
		t.Fatalf("ResolveStyles() error = %v", err)
	}
	return &Renderer{
		Doc:             pkg.Document(),
		Styles:          styles,
		Images:          images.Options{Box: images.Box{WidthCm: 14, HeightCm: 10}, MaxPixels: 2400, JPEGQuality: 90},
		FirstLineIndent: 2,
		Assets: fstest.MapFS{
			"img/a.png": {Data: pngBytes(t, 20, 10)},
			"img/b.png": {Data: pngBytes(t, 10, 10)},
		},
		Log: zaptest.NewLogger(t),
	}, pkg
}

func texts(r *Renderer) []string {
	return docxtest.Texts(r.Doc)
}

func documentXML(t *testing.T, pkg *docx.Package) string {
	t.Helper()
	data, err := pkg.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	f, err := zr.Open("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
