// Package common keeps enums shared by configuration and the rendering engine.
// It exists separately so config does not have to import the engine.
package common

// Named template region, listed in the physical order regions appear in the
// thesis template.
// ENUM(metadata, abstract, introduction, body, conclusion, references, appendix, changes, acknowledgments)
type Region int

// Regions returns all regions in document order.
func Regions() []Region {
	out := make([]Region, 0, len(_RegionNames))
	for _, n := range _RegionNames {
		out = append(out, _RegionValue[n])
	}
	return out
}
