package paper

import (
	"errors"
	"testing"

	"papergen/docx/docxtest"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"计算机", 6},
		{"2023年5月", 9},
		{"Ｆ", 2},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFillBlank(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		value   string
		want    string
		wantErr bool
	}{
		{"even padding", 7, "abc", "  abc  ", false},
		{"odd padding goes right", 8, "abc", "  abc   ", false},
		{"wide runes", 10, "张三", "   张三   ", false},
		{"exact fit", 4, "张三", "张三", false},
		{"overflow by one", 3, "张三", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FillBlank(tt.width, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrValueTooLong) {
					t.Fatalf("FillBlank() error = %v, want ErrValueTooLong", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("FillBlank() = %q, want %q", got, tt.want)
			}
		})
	}
}

func coverTemplate() []string {
	return docxtest.Cover()
}

var testMetadataLayout = MetadataLayout{TitleZhLine: 4, TitleEnLine: 5, FieldsFirstLine: 15, BlankWidth: 23}

func TestMetadataRender(t *testing.T) {
	r, _ := newRenderer(t, coverTemplate()...)
	m := Metadata{
		TitleZh: "论文题目",
		TitleEn: "Thesis Title",
		Name:    "张三",
		Number:  "201800000",
	}
	if err := m.Render(r, testMetadataLayout); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		line int
		want string
	}{
		{4, "论文题目 suffix"},
		{5, "Thesis Title suffix"},
		{15, "field：_______________________"},
		{17, "field：         张三          "},
		{18, "field：       201800000       "},
	}
	for _, tt := range tests {
		if got := r.Doc.Text(tt.line); got != tt.want {
			t.Errorf("line %d = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestMetadataRenderTooLong(t *testing.T) {
	r, _ := newRenderer(t, coverTemplate()...)
	m := Metadata{School: "电子信息与电气工程学部计算机科学与技术"}
	if err := m.Render(r, testMetadataLayout); !errors.Is(err, ErrValueTooLong) {
		t.Errorf("Render() error = %v, want ErrValueTooLong", err)
	}
}

func TestMetadataIsEmpty(t *testing.T) {
	var m *Metadata
	if !m.IsEmpty() || !(&Metadata{}).IsEmpty() || (&Metadata{Major: "x"}).IsEmpty() {
		t.Error("IsEmpty misreports")
	}
}
