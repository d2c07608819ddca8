package docx

import (
	"archive/zip"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// EMUPerCm is number of English Metric Units in a centimeter.
const EMUPerCm = 360000

// Picture is an image ready to be embedded into document.
type Picture struct {
	Data        []byte
	Ext         string // file extension without dot
	ContentType string
	CX, CY      int64 // displayed size in EMU
	Description string
}

// AddPicture embeds picture as inline drawing appended to the paragraph.
func (d *Document) AddPicture(p *Paragraph, pic Picture) error {
	if len(pic.Data) == 0 {
		return fmt.Errorf("empty picture data")
	}
	if pic.CX <= 0 || pic.CY <= 0 {
		return fmt.Errorf("invalid picture extent %dx%d", pic.CX, pic.CY)
	}
	ext := strings.ToLower(strings.TrimPrefix(pic.Ext, "."))
	relID, media := d.pkg.addMedia(pic.Data, ext, pic.ContentType)

	root := d.xml.Root()
	ensureNamespace(root, "r", nsR)
	ensureNamespace(root, "wp", nsWP)

	id := strconv.Itoa(d.nextDrawingID)
	d.nextDrawingID++

	cx, cy := strconv.FormatInt(pic.CX, 10), strconv.FormatInt(pic.CY, 10)

	inline := p.element().CreateElement("w:r").CreateElement("w:drawing").CreateElement("wp:inline")
	for _, a := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(a, "0")
	}
	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", cx)
	extent.CreateAttr("cy", cy)
	effect := inline.CreateElement("wp:effectExtent")
	for _, a := range []string{"l", "t", "r", "b"} {
		effect.CreateAttr(a, "0")
	}
	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", id)
	docPr.CreateAttr("name", "Picture "+id)
	if pic.Description != "" {
		docPr.CreateAttr("descr", pic.Description)
	}
	locks := inline.CreateElement("wp:cNvGraphicFramePr").CreateElement("a:graphicFrameLocks")
	locks.CreateAttr("xmlns:a", nsA)
	locks.CreateAttr("noChangeAspect", "1")

	graphic := inline.CreateElement("a:graphic")
	graphic.CreateAttr("xmlns:a", nsA)
	data := graphic.CreateElement("a:graphicData")
	data.CreateAttr("uri", nsPic)
	pp := data.CreateElement("pic:pic")
	pp.CreateAttr("xmlns:pic", nsPic)

	nv := pp.CreateElement("pic:nvPicPr")
	cNvPr := nv.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", "0")
	cNvPr.CreateAttr("name", path.Base(media))
	nv.CreateElement("pic:cNvPicPr")

	fill := pp.CreateElement("pic:blipFill")
	fill.CreateElement("a:blip").CreateAttr("r:embed", relID)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pp.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext2 := xfrm.CreateElement("a:ext")
	ext2.CreateAttr("cx", cx)
	ext2.CreateAttr("cy", cy)
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
	return nil
}

// addMedia stores image part next to the main document, registers its
// relationship and content type. Returns relationship id and part name.
func (pkg *Package) addMedia(data []byte, ext, contentType string) (string, string) {
	dir := path.Dir(pkg.main.name)
	var name string
	for n := 1; ; n++ {
		name = fmt.Sprintf("%s/media/image%d.%s", dir, n, ext)
		if _, ok := pkg.index[name]; !ok {
			break
		}
	}
	pkg.addPart(name, data, storeMethod(ext))

	rels := pkg.mainRels.xml.Root()
	used := make(map[string]bool)
	for _, r := range rels.SelectElements("Relationship") {
		used[r.SelectAttrValue("Id", "")] = true
	}
	var id string
	for n := len(used) + 1; ; n++ {
		id = "rId" + strconv.Itoa(n)
		if !used[id] {
			break
		}
	}
	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", relTypeImage)
	rel.CreateAttr("Target", strings.TrimPrefix(name, dir+"/"))

	pkg.ensureDefaultContentType(ext, contentType)
	return id, name
}

func (pkg *Package) ensureDefaultContentType(ext, contentType string) {
	types := pkg.contentTypes.xml.Root()
	for _, def := range types.SelectElements("Default") {
		if strings.EqualFold(def.SelectAttrValue("Extension", ""), ext) {
			return
		}
	}
	if contentType == "" {
		contentType = "image/" + ext
	}
	def := etree.NewElement("Default")
	def.CreateAttr("Extension", ext)
	def.CreateAttr("ContentType", contentType)
	if first := types.ChildElements(); len(first) > 0 {
		types.InsertChildAt(first[0].Index(), def)
	} else {
		types.AddChild(def)
	}
}

func storeMethod(ext string) uint16 {
	switch ext {
	case "png", "jpg", "jpeg", "gif":
		return zip.Store
	}
	return zip.Deflate
}

func maxDrawingID(root *etree.Element) int {
	var res int
	for _, el := range root.FindElements(".//wp:docPr") {
		if id, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && id > res {
			res = id
		}
	}
	return res
}
