package paper

import (
	"fmt"

	"go.uber.org/zap"

	"papergen/common"
)

// NeverMatch is a stop keyword which no template paragraph contains. Region
// using it is trimmed to the end of the document.
const NeverMatch = "/\\,.;'"

// Region describes how content is spliced into one template region.
type Region struct {
	Name        common.Region
	Anchor      string
	StyleFilter string
	Stop        string
	Lookahead   int
	// RemoveAnchor deletes template heading used as anchor once content is
	// in place, generated content brings its own headings.
	RemoveAnchor bool
	// Restyle applies bibliography style to all generated paragraphs.
	Restyle bool
}

// DefaultRegions returns splice parameters of thesis template regions in
// document order.
func DefaultRegions() []Region {
	return []Region{
		{Name: common.RegionIntroduction, Anchor: "引    言", StyleFilter: "Heading 1", Stop: "正文格式说明", Lookahead: 1},
		{Name: common.RegionBody, Anchor: "正文格式说明", StyleFilter: "Heading 1", Stop: "结    论", Lookahead: 1, RemoveAnchor: true},
		{Name: common.RegionConclusion, Anchor: "结    论", StyleFilter: "Heading 1", Stop: "参 考 文 献", Lookahead: 0},
		{Name: common.RegionReferences, Anchor: "参 考 文 献", StyleFilter: "Heading 1", Stop: "附录A", Lookahead: 1, Restyle: true},
		{Name: common.RegionAppendix, Anchor: "附录A", StyleFilter: "Heading 1", Stop: "修改记录", Lookahead: 1, RemoveAnchor: true},
		{Name: common.RegionChanges, Anchor: "修改记录", StyleFilter: "Heading 1", Stop: "致    谢", Lookahead: 1},
		{Name: common.RegionAcknowledgments, Anchor: "致    谢", StyleFilter: "Heading 1", Stop: NeverMatch, Lookahead: 0},
	}
}

// Component is a template region together with its content.
type Component struct {
	Region Region
	Root   *Block
}

// Render locates region anchor, removes template boilerplate after it and
// writes content in its place. Returns position right after generated
// content.
func (c *Component) Render(r *Renderer) (int, error) {
	log := r.Log.With(zap.Stringer("region", c.Region.Name))

	offset, err := r.Doc.FindAnchor(c.Region.Anchor, c.Region.StyleFilter)
	if err != nil {
		return 0, err
	}
	deleted, err := r.Doc.TrimUntil(offset, c.Region.Lookahead, c.Region.Stop)
	if err != nil {
		return 0, fmt.Errorf("unable to trim template: %w", err)
	}
	log.Debug("Template trimmed", zap.Int("anchor", offset), zap.Int("deleted", deleted))

	end, err := c.Root.Render(r, offset)
	if err != nil {
		return 0, err
	}

	if c.Region.Restyle {
		for i := offset; i < end; i++ {
			if r.Doc.IsTable(i) {
				continue
			}
			p, err := r.Doc.Paragraph(i)
			if err != nil {
				return 0, err
			}
			p.SetStyle(r.Styles.Bibliography)
		}
	}

	if c.Region.RemoveAnchor {
		pos, err := r.Doc.FindAnchor(c.Region.Anchor, c.Region.StyleFilter)
		if err != nil || pos != offset {
			log.Warn("Leftover anchor heading not found where expected, keeping it", zap.Int("expected", offset-1))
			return end, nil
		}
		if err := r.Doc.DeleteAt(pos - 1); err != nil {
			return 0, err
		}
		end--
	}
	log.Debug("Region rendered", zap.Int("start", offset), zap.Int("end", end))
	return end, nil
}
