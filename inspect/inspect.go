// Package inspect lists thesis template content to help configure anchors,
// metadata lines and style names.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	godocx "github.com/fumiama/go-docx"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"papergen/docx"
	"papergen/paper"
	"papergen/state"
	"papergen/utils/debug"
)

// Run is action of inspect command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		src = env.Cfg.Template.Path
	}
	if len(src) == 0 {
		return errors.New("no template has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if dst := cmd.Args().Get(1); len(dst) > 0 {
		f, err := os.Create(dst)
		if err != nil {
			return fmt.Errorf("unable to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return Template(out, src, cmd.Bool("parts"), log)
}

// Template writes listing of template at path: every paragraph sequence
// element with its style, positions of region anchors, styles defined in the
// template and, optionally, names of package parts.
func Template(w io.Writer, path string, parts bool, log *zap.Logger) error {
	pkg, err := docx.Open(path)
	if err != nil {
		return fmt.Errorf("unable to load template: %w", err)
	}
	doc := pkg.Document()

	if n, err := countBodyItems(path); err != nil {
		log.Warn("Independent reader was unable to parse template", zap.Error(err))
	} else if n != doc.Len() {
		log.Warn("Paragraph count differs from independent reader, positions may be unreliable",
			zap.Int("ours", doc.Len()), zap.Int("independent", n))
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Paragraphs (%d):", doc.Len())
	for i := range doc.Len() {
		text := doc.Text(i)
		if doc.IsTable(i) {
			tw.Excerpt(1, fmt.Sprintf("[%d] table", i), strings.ReplaceAll(text, "\n", " | "), 80)
			continue
		}
		tw.Excerpt(1, fmt.Sprintf("[%d] %s", i, doc.StyleName(i)), text, 80)
	}

	tw.Line(0, "Anchors:")
	for _, a := range anchors() {
		pos, err := doc.FindAnchor(a.text, a.style)
		if err != nil {
			tw.Line(1, "%-16s %q missing", a.name, a.text)
			continue
		}
		tw.Line(1, "%-16s %q at %d", a.name, a.text, pos-1)
	}

	styles := doc.Styles().All()
	names := make([]string, 0, len(styles))
	kinds := make(map[string]string, len(styles))
	for _, s := range styles {
		names = append(names, s.Name)
		kinds[s.Name] = s.Type
	}
	sort.Sort(natural.StringSlice(names))
	tw.Line(0, "Styles (%d):", len(names))
	for _, n := range names {
		tw.Line(1, "%s (%s)", n, kinds[n])
	}

	if parts {
		names := pkg.PartNames()
		sort.Sort(natural.StringSlice(names))
		tw.Line(0, "Parts (%d):", len(names))
		for _, n := range names {
			tw.Line(1, "%s", n)
		}
	}
	_, err = io.WriteString(w, tw.String())
	return err
}

type anchor struct {
	name, text, style string
}

func anchors() []anchor {
	list := []anchor{
		{name: "abstract (zh)", text: paper.AbstractZhAnchor},
		{name: "keywords (zh)", text: paper.AbstractZhKeyword},
		{name: "abstract (en)", text: paper.AbstractEnAnchor},
		{name: "keywords (en)", text: paper.AbstractEnKeyword},
	}
	for _, r := range paper.DefaultRegions() {
		list = append(list, anchor{name: r.Name.String(), text: r.Anchor, style: r.StyleFilter})
	}
	return list
}

// countBodyItems reads template with go-docx and counts body paragraphs and
// tables.
func countBodyItems(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	doc, err := godocx.Parse(f, fi.Size())
	if err != nil {
		return 0, err
	}
	n := 0
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *godocx.Paragraph, *godocx.Table:
			n++
		}
	}
	return n, nil
}
