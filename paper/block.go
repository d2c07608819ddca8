package paper

import (
	"fmt"

	"papergen/docx"
	"papergen/utils/debug"
)

// MaxHeadingLevel is the deepest supported heading.
const MaxHeadingLevel = 4

// Block is a node of content tree: optional heading, own content and nested
// blocks. Title without heading level is written as body paragraph. Blocks
// are only appended to while tree is built, rendering does not modify them.
type Block struct {
	title    string
	level    int
	id       string
	contents []Content
	children []*Block
}

// NewBlock creates empty untitled block.
func NewBlock() *Block {
	return &Block{}
}

// NewSection creates titled block with heading level.
func NewSection(title string, level int) (*Block, error) {
	b := NewBlock().SetTitle(title)
	if err := b.SetLevel(level); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Block) SetTitle(title string) *Block {
	b.title = title
	return b
}

// SetLevel sets heading level, 0 means no level.
func (b *Block) SetLevel(level int) error {
	if level < 0 || level > MaxHeadingLevel {
		return fmt.Errorf("%w: %d", ErrInvalidHeadingLevel, level)
	}
	b.level = level
	return nil
}

// SetID sets numeric prefix of the heading ("1", "2.3").
func (b *Block) SetID(id string) *Block {
	b.id = id
	return b
}

func (b *Block) AddContent(c ...Content) *Block {
	b.contents = append(b.contents, c...)
	return b
}

func (b *Block) AddChild(child ...*Block) *Block {
	b.children = append(b.children, child...)
	return b
}

func (b *Block) Title() string       { return b.title }
func (b *Block) Level() int          { return b.level }
func (b *Block) ID() string          { return b.id }
func (b *Block) Contents() []Content { return b.contents }
func (b *Block) Children() []*Block  { return b.children }

// IsEmpty reports whether rendering the block would produce nothing.
func (b *Block) IsEmpty() bool {
	if b == nil {
		return true
	}
	if b.title != "" || len(b.contents) > 0 {
		return false
	}
	for _, c := range b.children {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// HeadingText returns heading as written to the document.
func (b *Block) HeadingText() string {
	if b.id == "" {
		return b.title
	}
	return b.id + "  " + b.title
}

// Render writes block at cursor: page break before level 1 heading, title,
// own content and then children, depth first.
func (b *Block) Render(r *Renderer, cursor int) (int, error) {
	if b.title != "" {
		if b.level == 1 {
			p, err := r.insert(cursor)
			if err != nil {
				return cursor, err
			}
			p.AddPageBreak()
			cursor++
		}
		p, err := r.insert(cursor)
		if err != nil {
			return cursor, err
		}
		p.SetStyle(r.titleStyle(b.level))
		p.AddRun(b.HeadingText(), docx.RunFormat{})
		cursor++
	}
	var err error
	for i, c := range b.contents {
		if cursor, err = c.Render(r, cursor); err != nil {
			return cursor, fmt.Errorf("block %q content %d: %w", b.title, i, err)
		}
	}
	for _, child := range b.children {
		if cursor, err = child.Render(r, cursor); err != nil {
			return cursor, err
		}
	}
	return cursor, nil
}

// String dumps the tree for debugging.
func (b *Block) String() string {
	tw := debug.NewTreeWriter()
	b.dump(tw, 0)
	return tw.String()
}

func (b *Block) dump(tw *debug.TreeWriter, depth int) {
	if b.title != "" {
		tw.Line(depth, "block h%d %q", b.level, b.HeadingText())
	} else {
		tw.Line(depth, "block")
	}
	for _, c := range b.contents {
		c.dump(tw, depth+1)
	}
	for _, child := range b.children {
		child.dump(tw, depth+1)
	}
}
