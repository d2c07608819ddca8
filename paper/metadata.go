package paper

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"papergen/docx"
)

// Metadata is cover page information.
type Metadata struct {
	TitleZh    string `yaml:"title_zh"`
	TitleEn    string `yaml:"title_en"`
	School     string `yaml:"school"`
	Major      string `yaml:"major"`
	Name       string `yaml:"name"`
	Number     string `yaml:"number"`
	Teacher    string `yaml:"teacher"`
	Auditor    string `yaml:"auditor"`
	FinishDate string `yaml:"finish_date"`
}

// MetadataLayout is position of cover page lines in template paragraph
// sequence.
type MetadataLayout struct {
	TitleZhLine     int
	TitleEnLine     int
	FieldsFirstLine int
	BlankWidth      int
}

// IsEmpty reports whether there is anything to put on the cover page.
func (m *Metadata) IsEmpty() bool {
	return m == nil || *m == Metadata{}
}

// fields returns blank values in template order.
func (m *Metadata) fields() []string {
	return []string{m.School, m.Major, m.Name, m.Number, m.Teacher, m.Auditor, m.FinishDate}
}

// Render writes titles over template placeholders and fills field blanks.
// Empty values leave template text as is.
func (m *Metadata) Render(r *Renderer, layout MetadataLayout) error {
	for _, title := range []struct {
		line int
		text string
	}{
		{layout.TitleZhLine, m.TitleZh},
		{layout.TitleEnLine, m.TitleEn},
	} {
		if title.text == "" {
			continue
		}
		p, err := r.Doc.Paragraph(title.line)
		if err != nil {
			return fmt.Errorf("title line %d: %w", title.line, err)
		}
		setRunText(p, 0, title.text)
	}

	for i, value := range m.fields() {
		if value == "" {
			continue
		}
		line := layout.FieldsFirstLine + i
		filled, err := FillBlank(layout.BlankWidth, value)
		if err != nil {
			return fmt.Errorf("field line %d: %w", line, err)
		}
		p, err := r.Doc.Paragraph(line)
		if err != nil {
			return fmt.Errorf("field line %d: %w", line, err)
		}
		setRunText(p, -1, filled)
		r.Log.Debug("Metadata field filled", zap.Int("line", line), zap.String("value", value))
	}
	return nil
}

// setRunText replaces text of run at index, negative index counts from the
// end. Paragraph without runs gets a new one.
func setRunText(p *docx.Paragraph, index int, text string) {
	runs := p.Runs()
	if len(runs) == 0 {
		p.AddRun(text, docx.RunFormat{})
		return
	}
	if index < 0 {
		index += len(runs)
	}
	runs[min(max(index, 0), len(runs)-1)].SetText(text)
}

// DisplayWidth counts columns taken by s, wide and fullwidth runes take two.
func DisplayWidth(s string) int {
	var n int
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// FillBlank centers value in a blank of given width padding it with spaces.
// When padding is odd extra space goes to the right.
func FillBlank(blank int, value string) (string, error) {
	w := DisplayWidth(value)
	if w > blank {
		return "", fmt.Errorf("%w: %q takes %d columns, blank has %d", ErrValueTooLong, value, w, blank)
	}
	head := (blank - w) / 2
	return strings.Repeat(" ", head) + value + strings.Repeat(" ", blank-w-head), nil
}
