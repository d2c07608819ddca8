package frontend

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"papergen/common"
	"papergen/paper"
)

type sectionKind int

const (
	kindChapter sectionKind = iota
	kindAbstractZh
	kindAbstractEn
	kindRegion
)

var sectionTitles = []struct {
	re     *regexp.Regexp
	kind   sectionKind
	region common.Region
}{
	{regexp.MustCompile(`^摘要$`), kindAbstractZh, common.RegionAbstract},
	{regexp.MustCompile(`^(?i)abstract$`), kindAbstractEn, common.RegionAbstract},
	{regexp.MustCompile(`^引言$`), kindRegion, common.RegionIntroduction},
	{regexp.MustCompile(`^结论$`), kindRegion, common.RegionConclusion},
	{regexp.MustCompile(`^参考文献$`), kindRegion, common.RegionReferences},
	{regexp.MustCompile(`^附录`), kindRegion, common.RegionAppendix},
	{regexp.MustCompile(`^修改记录$`), kindRegion, common.RegionChanges},
	{regexp.MustCompile(`^致谢$`), kindRegion, common.RegionAcknowledgments},
}

func classify(title string) (sectionKind, common.Region) {
	t := strings.Join(strings.Fields(title), "")
	for _, st := range sectionTitles {
		if st.re.MatchString(t) {
			return st.kind, st.region
		}
	}
	return kindChapter, common.RegionBody
}

// Keyword line labels recognized in abstract text.
var (
	keywordsZh = regexp.MustCompile(`^关键词\s*[：:]\s*`)
	keywordsEn = regexp.MustCompile(`^(?i)key\s*words\s*[：:]\s*`)
	keywordSep = regexp.MustCompile(`\s*[；;，,]\s*`)
)

// Assemble distributes level 1 sections between template regions. Chapters
// go to the body numbered 1, 1.1, 1.1.1 and keep their headings, appendices
// keep their headings unnumbered, other regions use template headings so
// only their content is taken. Keywords come from front matter or from
// keyword line of the abstract.
func Assemble(parsed *Parsed, log *zap.Logger) *paper.Thesis {
	log = log.Named("assemble")
	th := paper.NewThesis()
	th.Metadata = parsed.Front.Metadata
	th.Abstract.KeywordsZh = parsed.Front.KeywordsZh
	th.Abstract.KeywordsEn = parsed.Front.KeywordsEn

	if len(parsed.Root.Contents()) > 0 {
		log.Warn("Content before the first heading is ignored", zap.Int("units", len(parsed.Root.Contents())))
	}

	chapter := 0
	for _, sec := range parsed.Root.Children() {
		if sec.Level() != 1 {
			log.Warn("Section is not under level 1 heading, ignored", zap.String("title", sec.Title()))
			continue
		}
		kind, region := classify(sec.Title())
		switch kind {
		case kindAbstractZh:
			var kw []string
			th.Abstract.Zh, kw = extractKeywords(sec, keywordsZh)
			if len(th.Abstract.KeywordsZh) == 0 {
				th.Abstract.KeywordsZh = kw
			}
		case kindAbstractEn:
			var kw []string
			th.Abstract.En, kw = extractKeywords(sec, keywordsEn)
			if len(th.Abstract.KeywordsEn) == 0 {
				th.Abstract.KeywordsEn = kw
			}
		case kindChapter:
			chapter++
			number(sec, strconv.Itoa(chapter))
			th.Section(region).AddChild(sec)
		default:
			if region == common.RegionAppendix {
				th.Section(region).AddChild(sec)
				continue
			}
			th.Section(region).AddContent(sec.Contents()...).AddChild(sec.Children()...)
		}
		log.Debug("Section assigned", zap.String("title", sec.Title()), zap.Stringer("region", region))
	}
	return th
}

// number sets heading ids of section and all titled sections below it.
func number(b *paper.Block, id string) {
	b.SetID(id)
	n := 0
	for _, child := range b.Children() {
		if child.Title() == "" {
			continue
		}
		n++
		number(child, id+"."+strconv.Itoa(n))
	}
}

// extractKeywords returns untitled copy of section without keyword line
// together with keywords found on it.
func extractKeywords(sec *paper.Block, label *regexp.Regexp) (*paper.Block, []string) {
	out := paper.NewBlock()
	var keywords []string
	for _, c := range sec.Contents() {
		if t, ok := c.(*paper.Text); ok && keywords == nil {
			s := strings.TrimSpace(t.String())
			if loc := label.FindStringIndex(s); loc != nil {
				keywords = splitKeywords(s[loc[1]:])
				continue
			}
		}
		out.AddContent(c)
	}
	return out.AddChild(sec.Children()...), keywords
}

func splitKeywords(s string) []string {
	keywords := []string{}
	for _, k := range keywordSep.Split(strings.TrimSpace(s), -1) {
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
