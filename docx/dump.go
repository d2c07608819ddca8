package docx

import (
	"fmt"

	"papergen/utils/debug"
)

const dumpTextLimit = 80

// Dump renders paragraph sequence as text tree: position, kind and style of
// every element followed by its text.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter()
	for i, el := range d.blocks() {
		kind := "paragraph"
		if is(el, "w:tbl") {
			kind = "table"
		}
		tw.Line(0, "[%d] %s %s", i, kind, fmt.Sprintf("%q", d.styleName(el)))
		if text := blockText(el); text != "" {
			tw.Excerpt(1, "text", text, dumpTextLimit)
		}
	}
	return tw.String()
}
