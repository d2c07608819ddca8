package paper

import "strings"

// Fragment is a run of text with uniform style.
type Fragment struct {
	Text   string
	Bold   bool
	Italic bool
}

// Plain returns unstyled fragment.
func Plain(text string) Fragment {
	return Fragment{Text: text}
}

// splitLines breaks fragments on new lines. Fragment spanning several lines
// contributes a piece to each of them, result always has at least one line.
func splitLines(frags []Fragment) [][]Fragment {
	lines := [][]Fragment{nil}
	for _, f := range frags {
		for i, piece := range strings.Split(f.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if piece == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Fragment{Text: piece, Bold: f.Bold, Italic: f.Italic})
		}
	}
	return lines
}
