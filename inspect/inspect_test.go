package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"papergen/docx/docxtest"
)

func writeTemplate(t *testing.T, body ...string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "template.docx")
	if err := os.WriteFile(name, docxtest.Build(body...), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestTemplate(t *testing.T) {
	body := append(docxtest.Thesis(), docxtest.Table("a", "b"))
	path := writeTemplate(t, body...)

	var buf bytes.Buffer
	if err := Template(&buf, path, true, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Paragraphs (64):",
		`[22] Heading 1: "摘    要"`,
		`[4] Normal: "title placeholder suffix"`,
		`[63] table: "a | b"`,
		`introduction     "引    言" at 42`,
		`conclusion       "结    论" at 48`,
		`references       "参 考 文 献" at 51`,
		`acknowledgments  "致    谢" at 60`,
		"参考文献正文 (paragraph)",
		"Table Grid (table)",
		"Parts (5):",
		"word/styles.xml",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestTemplateMissingAnchors(t *testing.T) {
	path := writeTemplate(t, docxtest.Para("only", ""))
	var buf bytes.Buffer
	if err := Template(&buf, path, false, zaptest.NewLogger(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `conclusion       "结    论" missing`) {
		t.Errorf("missing anchor not reported:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Parts") {
		t.Error("parts listed without request")
	}
}

func TestTemplateNotFound(t *testing.T) {
	if err := Template(&bytes.Buffer{}, filepath.Join(t.TempDir(), "none.docx"), false, zaptest.NewLogger(t)); err == nil {
		t.Error("Template() succeeded on missing file")
	}
}
