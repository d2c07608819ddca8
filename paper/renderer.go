package paper

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"papergen/docx"
	"papergen/utils/images"
)

// StyleNames lists template style names used for generated paragraphs.
type StyleNames struct {
	Body         string
	Headings     [4]string
	ImageCaption string
	TableCaption string
	TableBody    string // optional
	Bibliography string
}

// Styles are template styles resolved once per run.
type Styles struct {
	Body         docx.Style
	Headings     [4]docx.Style
	ImageCaption docx.Style
	TableCaption docx.Style
	TableBody    *docx.Style
	Bibliography docx.Style
}

// ResolveStyles looks up every named style in the template. Missing style is
// reported before anything is rendered.
func ResolveStyles(d *docx.Document, names StyleNames) (*Styles, error) {
	var (
		s   Styles
		err error
	)
	resolve := func(dst *docx.Style, name string) {
		if err != nil {
			return
		}
		*dst, err = d.ResolveStyle(name)
	}
	resolve(&s.Body, names.Body)
	for i := range names.Headings {
		resolve(&s.Headings[i], names.Headings[i])
	}
	resolve(&s.ImageCaption, names.ImageCaption)
	resolve(&s.TableCaption, names.TableCaption)
	resolve(&s.Bibliography, names.Bibliography)
	if err != nil {
		return nil, err
	}
	if names.TableBody != "" {
		st, err := d.ResolveStyle(names.TableBody)
		if err != nil {
			return nil, err
		}
		s.TableBody = &st
	}
	return &s, nil
}

// Renderer carries everything render calls need: the document being edited
// and run wide settings. Render calls must not be made concurrently.
type Renderer struct {
	Doc             *docx.Document
	Styles          *Styles
	Images          images.Options
	FirstLineIndent int   // in characters
	Assets          fs.FS // resolves relative image sources
	Log             *zap.Logger
}

func (r *Renderer) insert(cursor int) (*docx.Paragraph, error) {
	return r.Doc.InsertBefore(cursor)
}

// titleStyle returns heading style for level, title without level is written
// in body style.
func (r *Renderer) titleStyle(level int) docx.Style {
	if level <= 0 {
		return r.Styles.Body
	}
	return r.Styles.Headings[min(level, len(r.Styles.Headings))-1]
}

func (r *Renderer) readImage(src string) ([]byte, error) {
	if filepath.IsAbs(src) || r.Assets == nil {
		return os.ReadFile(src)
	}
	return fs.ReadFile(r.Assets, path.Clean(filepath.ToSlash(src)))
}

func (r *Renderer) picture(src, caption string) (docx.Picture, error) {
	data, err := r.readImage(src)
	if err != nil {
		return docx.Picture{}, fmt.Errorf("unable to read image %q: %w", src, err)
	}
	prepared, err := images.Prepare(data, r.Images)
	if err != nil {
		return docx.Picture{}, fmt.Errorf("unable to prepare image %q: %w", src, err)
	}
	r.Log.Debug("Image prepared",
		zap.String("source", src),
		zap.String("type", prepared.ContentType),
		zap.Int("width", prepared.WidthPx),
		zap.Int("height", prepared.HeightPx))
	return docx.Picture{
		Data:        prepared.Data,
		Ext:         prepared.Ext,
		ContentType: prepared.ContentType,
		CX:          prepared.CX,
		CY:          prepared.CY,
		Description: caption,
	}, nil
}
