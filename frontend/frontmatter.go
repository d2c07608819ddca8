package frontend

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"papergen/paper"
)

// FrontMatter is YAML header of the source document.
type FrontMatter struct {
	paper.Metadata `yaml:",inline"`
	KeywordsZh     []string `yaml:"keywords_zh"`
	KeywordsEn     []string `yaml:"keywords_en"`
}

var fence = []byte("---")

// splitFrontMatter separates YAML header delimited by "---" lines from
// markdown body. Source without header is returned unchanged.
func splitFrontMatter(src []byte) (header, body []byte, err error) {
	first, rest, ok := cutLine(src)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return nil, src, nil
	}
	header = rest
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			return header[:len(header)-len(rest)], next, nil
		}
		rest = next
	}
	return nil, nil, errors.New("front matter is not terminated")
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

func parseFrontMatter(header []byte) (FrontMatter, error) {
	var fm FrontMatter
	if len(bytes.TrimSpace(header)) == 0 {
		return fm, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(header))
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil {
		return fm, fmt.Errorf("unable to decode front matter: %w", err)
	}
	return fm, nil
}
