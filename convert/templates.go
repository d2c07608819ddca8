package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"papergen/config"
	"papergen/paper"
)

// Values holds variables available for template expansion.
type Values struct {
	Context    string
	TitleZh    string
	TitleEn    string
	School     string
	Major      string
	Name       string
	Number     string
	Teacher    string
	Date       string
	SourceFile string
	RunID      string
}

func expandTemplate(m *paper.Metadata, name config.TemplateFieldName, field, src, runID string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		TitleZh:    m.TitleZh,
		TitleEn:    m.TitleEn,
		School:     m.School,
		Major:      m.Major,
		Name:       m.Name,
		Number:     m.Number,
		Teacher:    m.Teacher,
		Date:       m.FinishDate,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		RunID:      runID,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
