package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
	"golang.org/x/net/html/charset"

	"papergen/archive"
)

const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	defaultMainPart  = "word/document.xml"
	defaultStyles    = "word/styles.xml"
)

type part struct {
	name   string
	data   []byte
	method uint16
	xml    *etree.Document // set for parts parsed for editing, serialized on save
}

// Package is an opened docx container. Only parts needed for editing are
// parsed, everything else is carried over byte for byte.
type Package struct {
	parts []*part
	index map[string]*part

	main         *part
	mainRels     *part
	contentTypes *part

	doc *Document
}

// Open loads docx package from file.
func Open(name string) (*Package, error) {
	pkg := newPackage()
	if err := archive.Walk(name, "", pkg.addZipFile); err != nil {
		return nil, fmt.Errorf("unable to read docx (%s): %w", name, err)
	}
	if err := pkg.load(); err != nil {
		return nil, fmt.Errorf("unable to load docx (%s): %w", name, err)
	}
	return pkg, nil
}

// Read loads docx package from r.
func Read(r io.ReaderAt, size int64) (*Package, error) {
	pkg := newPackage()
	if err := archive.WalkReader(r, size, "", pkg.addZipFile); err != nil {
		return nil, fmt.Errorf("unable to read docx: %w", err)
	}
	if err := pkg.load(); err != nil {
		return nil, fmt.Errorf("unable to load docx: %w", err)
	}
	return pkg, nil
}

func newPackage() *Package {
	return &Package{index: make(map[string]*part)}
}

func (pkg *Package) addZipFile(f *zip.File) error {
	data, err := archive.ReadFile(f)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", f.Name, err)
	}
	pkg.addPart(f.Name, data, f.Method)
	return nil
}

func (pkg *Package) addPart(name string, data []byte, method uint16) *part {
	p := &part{name: name, data: data, method: method}
	pkg.parts = append(pkg.parts, p)
	pkg.index[name] = p
	return p
}

func (pkg *Package) load() error {
	var err error
	if pkg.contentTypes, err = pkg.parse(partContentTypes); err != nil {
		return err
	}
	mainName := defaultMainPart
	if rels, err := pkg.parse(partRootRels); err == nil {
		if target := findTarget(rels.xml, relTypeDoc); target != "" {
			mainName = strings.TrimPrefix(target, "/")
		}
	}
	if pkg.main, err = pkg.parse(mainName); err != nil {
		return err
	}
	if pkg.mainRels, err = pkg.parse(relsName(mainName)); err != nil {
		// documents without any relationships are legal, create empty part
		doc := etree.NewDocument()
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		doc.CreateElement("Relationships").CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
		pkg.mainRels = pkg.addPart(relsName(mainName), nil, zip.Deflate)
		pkg.mainRels.xml = doc
	}

	stylesName := defaultStyles
	if target := findTarget(pkg.mainRels.xml, relTypeStyle); target != "" {
		stylesName = resolveTarget(mainName, target)
	}
	var styles *etree.Document
	if p, err := pkg.parse(stylesName); err == nil {
		styles = p.xml
	}

	doc, err := newDocument(pkg, pkg.main.xml, parseStyles(styles))
	if err != nil {
		return err
	}
	pkg.doc = doc
	return nil
}

// parse makes part editable.
func (pkg *Package) parse(name string) (*part, error) {
	p, ok := pkg.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrInvalidPackage, name)
	}
	if p.xml != nil {
		return p, nil
	}
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{CharsetReader: charset.NewReaderLabel}
	if err := doc.ReadFromBytes(p.data); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", name, err)
	}
	p.xml = doc
	return p, nil
}

// Document returns main document of the package.
func (pkg *Package) Document() *Document {
	return pkg.doc
}

// PartNames returns names of all parts in container order.
func (pkg *Package) PartNames() []string {
	names := make([]string, 0, len(pkg.parts))
	for _, p := range pkg.parts {
		names = append(names, p.name)
	}
	return names
}

// WriteTo serializes package as zip archive.
func (pkg *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, p := range pkg.parts {
		data := p.data
		if p.xml != nil {
			var err error
			if data, err = p.xml.WriteToBytes(); err != nil {
				return cw.n, fmt.Errorf("unable to serialize %s: %w", p.name, err)
			}
		}
		method := p.method
		if method != zip.Store {
			method = zip.Deflate
		}
		out, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: method})
		if err != nil {
			return cw.n, err
		}
		if _, err := out.Write(data); err != nil {
			return cw.n, fmt.Errorf("unable to write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Bytes returns serialized package.
func (pkg *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := pkg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes package to path, replacing existing file. When fixZip is set
// archive is rewritten without data descriptors, some readers choke on them.
func (pkg *Package) Save(name string, fixZip bool) (err error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if !fixZip {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("unable to create output file: %w", err)
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		_, err = pkg.WriteTo(f)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), ".papergen-*.docx")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := pkg.WriteTo(tmp); err != nil {
		return multierr.Append(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to finalize temporary file: %w", err)
	}
	return copyZipWithoutDataDescriptors(tmpName, name)
}

func copyZipWithoutDataDescriptors(from, to string) (err error) {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return multierr.Append(fmt.Errorf("unable to write target file (%s): %w", to, err), w.Close())
		}
	}
	return w.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func relsName(partName string) string {
	dir, file := path.Split(partName)
	return dir + "_rels/" + file + ".rels"
}

func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

func findTarget(rels *etree.Document, relType string) string {
	if rels == nil || rels.Root() == nil {
		return ""
	}
	for _, r := range rels.Root().SelectElements("Relationship") {
		if r.SelectAttrValue("Type", "") == relType {
			return r.SelectAttrValue("Target", "")
		}
	}
	return ""
}
