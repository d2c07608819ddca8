// Package frontend turns markdown source into content tree the paper engine
// renders.
package frontend

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
	"golang.org/x/text/width"

	"papergen/paper"
)

// TablePrefix starts paragraph used as title of the table following it.
const TablePrefix = "表"

// Parsed is markdown source split into front matter and content tree. Root
// is untitled, its children are level 1 sections.
type Parsed struct {
	Front FrontMatter
	Root  *paper.Block
}

// Titles returns titles of level 1 sections in source order.
func (p *Parsed) Titles() []string {
	var titles []string
	for _, b := range p.Root.Children() {
		titles = append(titles, b.Title())
	}
	return titles
}

type parser struct {
	src     []byte
	baseDir string
	log     *zap.Logger
}

// Parse reads markdown with optional YAML front matter. Relative image
// sources which can not be expressed inside baseDir are made absolute.
func Parse(src []byte, baseDir string, log *zap.Logger) (*Parsed, error) {
	header, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}
	fm, err := parseFrontMatter(header)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(body))

	p := &parser{src: body, baseDir: baseDir, log: log.Named("markdown")}
	root, err := p.tree(doc)
	if err != nil {
		return nil, err
	}
	return &Parsed{Front: fm, Root: root}, nil
}

type level struct {
	block *paper.Block
	depth int
}

// tree nests blocks by heading level the same way an outline is built:
// heading closes every open section of the same or deeper level.
func (p *parser) tree(doc ast.Node) (*paper.Block, error) {
	root := paper.NewBlock()
	stack := []level{{block: root}}
	current := func() *paper.Block { return stack[len(stack)-1].block }

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > paper.MaxHeadingLevel {
			if err := p.block(current(), n); err != nil {
				return nil, err
			}
			continue
		}
		sec, err := paper.NewSection(strings.TrimSpace(p.plain(h)), h.Level)
		if err != nil {
			return nil, err
		}
		for len(stack) > 1 && stack[len(stack)-1].depth >= h.Level {
			stack = stack[:len(stack)-1]
		}
		current().AddChild(sec)
		stack = append(stack, level{block: sec, depth: h.Level})
	}
	return root, nil
}

func (p *parser) block(b *paper.Block, n ast.Node) error {
	switch n := n.(type) {
	case *ast.Heading:
		// deeper than supported, keep as emphasized line
		b.AddContent(paper.NewText(paper.Fragment{Text: p.plain(n), Bold: true}))
	case *ast.Paragraph, *ast.TextBlock:
		if hasImage(n) {
			p.images(b, n)
			return nil
		}
		if isTableTitle(p.plain(n), n.NextSibling()) {
			return nil
		}
		if frags := p.fragments(n); len(frags) > 0 {
			b.AddContent(paper.NewText(frags...))
		}
	case *east.Table:
		tbl, err := p.table(n)
		if err != nil {
			return err
		}
		b.AddContent(tbl)
	case *ast.List:
		p.list(b, n)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var sb strings.Builder
		lines := n.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			sb.Write(seg.Value(p.src))
		}
		if code := strings.TrimRight(sb.String(), "\n"); code != "" {
			b.AddContent(paper.PlainText(code))
		}
	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := p.block(b, c); err != nil {
				return err
			}
		}
	default:
		p.log.Debug("Markdown node ignored", zap.String("kind", n.Kind().String()))
	}
	return nil
}

func (p *parser) list(b *paper.Block, l *ast.List) {
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		frags := []paper.Fragment{paper.Plain(marker)}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if _, nested := c.(*ast.List); nested {
				continue
			}
			frags = append(frags, p.fragments(c)...)
		}
		b.AddContent(paper.NewText(frags...))
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				p.list(b, nested)
			}
		}
	}
}

func isTableTitle(s string, next ast.Node) bool {
	if next == nil || next.Kind() != east.KindTable {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(s), TablePrefix)
}

func (p *parser) table(n *east.Table) (*paper.Table, error) {
	var title string
	if prev := n.PreviousSibling(); prev != nil && prev.Kind() == ast.KindParagraph {
		if s := strings.TrimSpace(p.plain(prev)); strings.HasPrefix(s, TablePrefix) {
			title = s
		}
	}
	var rows []paper.Row
	for r := n.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, strings.TrimSpace(p.plain(c)))
		}
		// rules above header, below header and below the last row
		_, header := r.(*east.TableHeader)
		rows = append(rows, paper.Row{Cells: cells, TopBorder: header || len(rows) == 1})
	}
	return paper.NewTable(title, rows...)
}

func hasImage(n ast.Node) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == ast.KindImage {
			return true
		}
	}
	return false
}

// images turns paragraph holding pictures into Image content. Text following
// a picture is its caption, alternative text is used when there is none.
// Text in front of the first picture stays regular text.
func (p *parser) images(b *paper.Block, n ast.Node) {
	var (
		lead []paper.Fragment
		pics []paper.Picture
		alts []string
		caps []string
	)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if img, ok := c.(*ast.Image); ok {
			pics = append(pics, paper.Picture{Source: p.source(string(img.Destination))})
			alts = append(alts, strings.TrimSpace(p.plain(img)))
			caps = append(caps, "")
			continue
		}
		frags := p.inline(c, false, false, nil)
		if len(pics) == 0 {
			lead = append(lead, frags...)
			continue
		}
		for _, f := range frags {
			caps[len(caps)-1] += f.Text
		}
	}
	if frags := trimFragments(lead); len(frags) > 0 {
		b.AddContent(paper.NewText(frags...))
	}
	for i := range pics {
		pics[i].Caption = strings.TrimSpace(caps[i])
		if pics[i].Caption == "" {
			pics[i].Caption = alts[i]
		}
	}
	b.AddContent(paper.NewImage(pics...))
}

// source keeps relative picture path relative when it stays inside baseDir.
func (p *parser) source(dst string) string {
	if dst == "" || filepath.IsAbs(dst) {
		return dst
	}
	if clean := path.Clean(dst); fs.ValidPath(clean) {
		return clean
	}
	abs, err := filepath.Abs(filepath.Join(p.baseDir, filepath.FromSlash(dst)))
	if err != nil {
		p.log.Warn("Unable to resolve image path", zap.String("path", dst), zap.Error(err))
		return dst
	}
	return abs
}

func (p *parser) plain(n ast.Node) string {
	var sb strings.Builder
	for _, f := range p.collect(n, false, false, nil) {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

func (p *parser) fragments(n ast.Node) []paper.Fragment {
	return trimFragments(p.collect(n, false, false, nil))
}

// collect gathers inline text of node children with emphasis already
// classified by markdown parser.
func (p *parser) collect(n ast.Node, bold, italic bool, out []paper.Fragment) []paper.Fragment {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = p.inline(c, bold, italic, out)
	}
	return out
}

// inline appends text of a single inline node, adjacent pieces of the same
// style are merged.
func (p *parser) inline(n ast.Node, bold, italic bool, out []paper.Fragment) []paper.Fragment {
	add := func(s string) {
		if s == "" {
			return
		}
		if last := len(out) - 1; last >= 0 && out[last].Bold == bold && out[last].Italic == italic {
			out[last].Text += s
			return
		}
		out = append(out, paper.Fragment{Text: s, Bold: bold, Italic: italic})
	}
	switch n := n.(type) {
	case *ast.Text:
		add(string(n.Segment.Value(p.src)))
		switch {
		case n.HardLineBreak():
			add("\n")
		case n.SoftLineBreak():
			add(softBreak(out))
		}
	case *ast.String:
		add(string(n.Value))
	case *ast.Emphasis:
		out = p.collect(n, bold || n.Level >= 2, italic || n.Level == 1, out)
	case *ast.AutoLink:
		add(string(n.Label(p.src)))
	case *ast.RawHTML, *ast.Image:
	default:
		out = p.collect(n, bold, italic, out)
	}
	return out
}

// softBreak joins wrapped source lines: East Asian text continues directly,
// everything else gets a space.
func softBreak(frags []paper.Fragment) string {
	if len(frags) == 0 {
		return ""
	}
	r, _ := utf8.DecodeLastRuneInString(frags[len(frags)-1].Text)
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return ""
	}
	return " "
}

func trimFragments(frags []paper.Fragment) []paper.Fragment {
	for len(frags) > 0 {
		if s := strings.TrimLeft(frags[0].Text, " \t\n"); s != "" {
			frags[0].Text = s
			break
		}
		frags = frags[1:]
	}
	for len(frags) > 0 {
		last := len(frags) - 1
		if s := strings.TrimRight(frags[last].Text, " \t\n"); s != "" {
			frags[last].Text = s
			break
		}
		frags = frags[:last]
	}
	return frags
}

func (p *Parsed) String() string {
	return fmt.Sprintf("front matter %+v\n%s", p.Front, p.Root)
}
