// Package convert implements generate command: markdown source is parsed,
// checked and spliced into thesis template.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"papergen/common"
	"papergen/config"
	"papergen/docx"
	"papergen/frontend"
	"papergen/paper"
	"papergen/state"
	"papergen/utils/images"
)

// Run is action of generate command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	tmpl := cmd.String("template")
	if len(tmpl) == 0 {
		tmpl = env.Cfg.Template.Path
	}
	if len(tmpl) == 0 {
		return errors.New("no thesis template has been specified")
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("source", src), zap.String("template", tmpl), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	out, err := Generate(ctx, src, tmpl, dst, env, log)
	if err != nil {
		return err
	}
	log.Info("Thesis written", zap.String("file", out))
	return nil
}

// Generate produces thesis document from markdown file src using template
// tmpl. Destination is either directory or full name of the resulting file.
// Nothing is written when any step fails. Returns name of the written file.
func Generate(ctx context.Context, src, tmpl, dst string, env *state.LocalEnv, log *zap.Logger) (string, error) {
	cfg := env.Cfg

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("unable to read source: %w", err)
	}
	env.Rpt.Store("source/"+filepath.Base(src), src)

	parsed, err := frontend.Parse(data, filepath.Dir(src), log)
	if err != nil {
		return "", fmt.Errorf("unable to parse source (%s): %w", src, err)
	}
	if len(cfg.Template.ExpectedSections) > 0 {
		if warnings := frontend.Validate(parsed.Titles(), cfg.Template.ExpectedSections, log); len(warnings) > 0 {
			log.Warn("Source structure does not match expected sections", zap.Int("problems", len(warnings)))
		}
	}
	thesis := frontend.Assemble(parsed, log)
	env.Rpt.StoreData("tree.txt", []byte(thesis.String()))

	if err := ctx.Err(); err != nil {
		return "", err
	}

	pkg, err := docx.Open(tmpl)
	if err != nil {
		return "", fmt.Errorf("unable to load template: %w", err)
	}
	doc := pkg.Document()
	if cfg.Template.StripTables {
		if n := doc.StripTables(); n > 0 {
			log.Debug("Template tables removed", zap.Int("count", n))
		}
	}

	styles, err := paper.ResolveStyles(doc, styleNames(&cfg.Template.Styles))
	if err != nil {
		return "", fmt.Errorf("template styles: %w", err)
	}
	for _, reg := range common.Regions() {
		if cfg.Template.SkipRegion(reg) {
			log.Debug("Region will be left as in template", zap.Stringer("region", reg))
		}
	}
	r := &paper.Renderer{
		Doc:    doc,
		Styles: styles,
		Images: images.Options{
			Box:         images.Box{WidthCm: cfg.Document.Images.BoxWidthCm, HeightCm: cfg.Document.Images.BoxHeightCm},
			MaxPixels:   cfg.Document.Images.MaxPixels,
			JPEGQuality: cfg.Document.Images.JPEGQuality,
		},
		FirstLineIndent: cfg.Document.FirstLineIndent,
		Assets:          os.DirFS(filepath.Dir(src)),
		Log:             log,
	}
	if err := thesis.Render(r, layout(&cfg.Template)); err != nil {
		return "", fmt.Errorf("unable to render thesis: %w", err)
	}
	env.Rpt.StoreData("document.txt", []byte(doc.Dump()))

	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := buildOutputPath(&thesis.Metadata, src, dst, env)
	if err := checkOutput(out, env.Overwrite, log); err != nil {
		return "", err
	}
	if err := pkg.Save(out, cfg.Document.FixZip); err != nil {
		return "", fmt.Errorf("unable to save result: %w", err)
	}
	env.Rpt.Store("result"+outputExt, out)
	return out, nil
}

func checkOutput(name string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(name)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return nil
	case os.IsNotExist(err):
		return nil
	default:
		return err
	}
}

func styleNames(conf *config.StylesConfig) paper.StyleNames {
	names := paper.StyleNames{
		Body:         conf.Body,
		ImageCaption: conf.ImageCaption,
		TableCaption: conf.TableCaption,
		TableBody:    conf.TableBody,
		Bibliography: conf.Bibliography,
	}
	copy(names.Headings[:], conf.Headings)
	return names
}

func layout(conf *config.TemplateConfig) paper.Layout {
	return paper.Layout{
		Metadata: paper.MetadataLayout{
			TitleZhLine:     conf.Metadata.TitleZhLine,
			TitleEnLine:     conf.Metadata.TitleEnLine,
			FieldsFirstLine: conf.Metadata.FieldsFirstLine,
			BlankWidth:      conf.Metadata.BlankWidth,
		},
		Abstract: paper.AbstractLayout{
			EnTitleOffset:    conf.Abstract.EnTitleOffset,
			KeywordSeparator: conf.Abstract.KeywordSeparator,
		},
		Skip: conf.SkipRegions,
	}
}
