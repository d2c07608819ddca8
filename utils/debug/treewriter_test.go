package debug

import "testing"

func TestTreeWriterLines(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "block %d", 1)
	tw.TextBlock(1, "title", "引    言")
	tw.TextBlock(1, "empty", "")
	tw.Line(2, "leaf")

	want := "block 1\n  title: \"引    言\"\n  empty: \n    leaf\n"
	if got := tw.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii", "abcdef", 3, "abc…"},
		{"wide", "参考文献正文", 2, "参考…"},
		{"no limit", "abcdef", 0, "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.limit); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tw := NewTreeWriter()
	tw.Excerpt(1, "text", "致谢致谢致谢", 2)
	if got, want := tw.String(), "  text: \"致谢…\"\n"; got != want {
		t.Errorf("Excerpt wrote %q, want %q", got, want)
	}
}
