//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// CleanFileName makes name usable as a file name: path separators are
// dropped and leading dots trimmed so result is never hidden or relative.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == os.PathSeparator || sym == os.PathListSeparator || sym == 0 {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimSpace(strings.TrimLeft(out, "."))
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
