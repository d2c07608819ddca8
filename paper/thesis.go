package paper

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"papergen/common"
)

// Thesis is the whole generated content keyed by template region.
type Thesis struct {
	Metadata Metadata
	Abstract Abstract
	Sections map[common.Region]*Block
}

// NewThesis creates thesis with no content.
func NewThesis() *Thesis {
	return &Thesis{Sections: make(map[common.Region]*Block)}
}

// Section returns block for the region creating it when necessary.
func (t *Thesis) Section(region common.Region) *Block {
	b, ok := t.Sections[region]
	if !ok {
		b = NewBlock()
		t.Sections[region] = b
	}
	return b
}

// Layout collects fixed template positions and splice parameters.
type Layout struct {
	Metadata MetadataLayout
	Abstract AbstractLayout
	Regions  []Region
	Skip     []common.Region
}

// Render splices content into the template region by region in document
// order. Regions without content or explicitly skipped are left untouched.
// Any error leaves document partially edited and must not be saved.
func (t *Thesis) Render(r *Renderer, layout Layout) error {
	log := r.Log.Named("render")
	skip := func(region common.Region, empty bool) bool {
		if slices.Contains(layout.Skip, region) {
			log.Info("Region skipped by configuration", zap.Stringer("region", region))
			return true
		}
		if empty {
			log.Debug("Region has no content", zap.Stringer("region", region))
			return true
		}
		return false
	}
	rr := *r
	rr.Log = log

	if !skip(common.RegionMetadata, t.Metadata.IsEmpty()) {
		if err := t.Metadata.Render(&rr, layout.Metadata); err != nil {
			return fmt.Errorf("region %s: %w", common.RegionMetadata, err)
		}
	}
	if !skip(common.RegionAbstract, t.Abstract.IsEmpty()) {
		abstract := t.Abstract
		if abstract.TitleEn == "" {
			abstract.TitleEn = t.Metadata.TitleEn
		}
		if err := abstract.Render(&rr, layout.Abstract); err != nil {
			return fmt.Errorf("region %s: %w", common.RegionAbstract, err)
		}
	}

	regions := layout.Regions
	if regions == nil {
		regions = DefaultRegions()
	}
	for _, region := range regions {
		root := t.Sections[region.Name]
		if skip(region.Name, root.IsEmpty()) {
			continue
		}
		c := Component{Region: region, Root: root}
		if _, err := c.Render(&rr); err != nil {
			return fmt.Errorf("region %s: %w", region.Name, err)
		}
		log.Info("Region rendered", zap.Stringer("region", region.Name))
	}
	return nil
}

// String dumps content tree for debugging.
func (t *Thesis) String() string {
	var sb strings.Builder
	if !t.Abstract.Zh.IsEmpty() {
		sb.WriteString("abstract (zh):\n" + t.Abstract.Zh.String())
	}
	if !t.Abstract.En.IsEmpty() {
		sb.WriteString("abstract (en):\n" + t.Abstract.En.String())
	}
	for _, region := range common.Regions() {
		if b, ok := t.Sections[region]; ok && !b.IsEmpty() {
			sb.WriteString(region.String() + ":\n" + b.String())
		}
	}
	return sb.String()
}
