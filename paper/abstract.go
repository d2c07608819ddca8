package paper

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"papergen/docx"
)

// Abstract template anchors.
const (
	AbstractZhAnchor  = "摘    要"
	AbstractZhKeyword = "关键词："
	AbstractEnAnchor  = "Abstract"
	AbstractEnKeyword = "Key Words："
)

// Abstract is bilingual abstract with keywords.
type Abstract struct {
	Zh         *Block
	En         *Block
	KeywordsZh []string
	KeywordsEn []string
	// TitleEn is written above English abstract, defaults to metadata title.
	TitleEn string
}

// AbstractLayout positions English title relative to Chinese keyword line.
type AbstractLayout struct {
	EnTitleOffset    int
	KeywordSeparator string
}

// IsEmpty reports whether there is no abstract content at all.
func (a *Abstract) IsEmpty() bool {
	return a == nil || (a.Zh.IsEmpty() && a.En.IsEmpty() && len(a.KeywordsZh) == 0 && len(a.KeywordsEn) == 0)
}

// Render fills Chinese part, English title and English part. Each part
// replaces template text between its heading and keyword line.
func (a *Abstract) Render(r *Renderer, layout AbstractLayout) error {
	zhStart, err := r.Doc.FindAnchor(AbstractZhAnchor, "")
	if err != nil {
		return err
	}
	kwZh, err := a.renderPart(r, zhStart, a.Zh, AbstractZhKeyword, a.KeywordsZh, layout.KeywordSeparator)
	if err != nil {
		return fmt.Errorf("chinese abstract: %w", err)
	}

	titlePos := kwZh + layout.EnTitleOffset
	if a.TitleEn != "" {
		p, err := r.Doc.Paragraph(titlePos)
		if err != nil {
			return fmt.Errorf("english title line %d: %w", titlePos, err)
		}
		setRunText(p, 1, a.TitleEn)
	}

	enHeading, ok := r.Doc.Find(titlePos+1, func(text, _ string) bool {
		return strings.Contains(text, AbstractEnAnchor)
	})
	if !ok {
		return &docx.AnchorError{Text: AbstractEnAnchor}
	}
	if _, err := a.renderPart(r, enHeading+1, a.En, AbstractEnKeyword, a.KeywordsEn, layout.KeywordSeparator); err != nil {
		return fmt.Errorf("english abstract: %w", err)
	}
	return nil
}

// renderPart trims template text keeping one paragraph before keyword line,
// renders text and fills keywords. Part without text keeps template text.
// Returns position of keyword line.
func (a *Abstract) renderPart(r *Renderer, offset int, text *Block, label string, keywords []string, sep string) (int, error) {
	isKeywordLine := func(t string) bool { return strings.HasPrefix(t, label) }

	var kwLine int
	if text.IsEmpty() {
		pos, ok := r.Doc.Find(offset, func(t, _ string) bool { return isKeywordLine(t) })
		if !ok {
			return 0, &docx.AnchorError{Text: label}
		}
		kwLine = pos
	} else {
		if _, err := r.Doc.TrimUntilFunc(offset, 1, isKeywordLine); err != nil {
			return 0, err
		}
		end, err := text.Render(r, offset)
		if err != nil {
			return 0, err
		}
		kwLine = end + 1
		if !isKeywordLine(r.Doc.Text(kwLine)) {
			return 0, &docx.AnchorError{Text: label}
		}
	}
	if len(keywords) > 0 {
		p, err := r.Doc.Paragraph(kwLine)
		if err != nil {
			return 0, err
		}
		setKeywords(p, label, strings.Join(keywords, sep))
		r.Log.Debug("Keywords set", zap.String("label", label), zap.Int("count", len(keywords)))
	}
	return kwLine, nil
}

// setKeywords keeps runs making up the label (it may be split between several
// runs) and puts keywords into the next run, dropping the rest.
func setKeywords(p *docx.Paragraph, label, keywords string) {
	runs := p.Runs()
	var acc string
	for i, run := range runs {
		text := run.Text()
		acc += text
		idx := strings.Index(acc, label)
		if idx < 0 {
			continue
		}
		labelEnd := idx + len(label)
		runStart := len(acc) - len(text)
		if labelEnd < len(acc) {
			run.SetText(text[:labelEnd-runStart])
		}
		if i+1 < len(runs) {
			runs[i+1].SetText(keywords)
			p.TruncateRuns(i + 2)
			return
		}
		p.AddRun(keywords, docx.RunFormat{})
		return
	}
	p.AddRun(keywords, docx.RunFormat{})
}
