package frontend

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		titles   []string
		want     []string // message prefixes
	}{
		{
			name:     "wildcard consumes chapters",
			patterns: []string{"引言", MatchAny, "结论"},
			titles:   []string{"引言", "第一章", "第二章", "结论"},
		},
		{
			name:     "missing required section",
			patterns: []string{"引言", MatchAny, "结论"},
			titles:   []string{"第一章", "结论"},
			want:     []string{"Unexpected section", "Unexpected section", "Unmatched required sections"},
		},
		{
			name:     "unexpected extra section",
			patterns: []string{"引言", "结论"},
			titles:   []string{"引言", "杂项", "结论"},
			want:     []string{"Unexpected section"},
		},
		{
			name:     "trailing wildcard may match nothing",
			patterns: []string{"引言", MatchAny},
			titles:   []string{"引言"},
		},
		{
			name:     "input exhausted",
			patterns: []string{"引言", "结论"},
			titles:   []string{"引言"},
			want:     []string{"Unmatched required sections"},
		},
		{
			name:     "template spacing ignored",
			patterns: []string{"引言", "附录.*"},
			titles:   []string{"引    言", "附录A 代码"},
		},
		{
			name:     "invalid pattern matched literally",
			patterns: []string{"C++("},
			titles:   []string{"C++("},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			got := Validate(tt.titles, tt.patterns, zap.New(core))
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %q, want %d warnings", got, len(tt.want))
			}
			for i, w := range tt.want {
				if !strings.HasPrefix(got[i], w) {
					t.Errorf("warning %d = %q, want prefix %q", i, got[i], w)
				}
			}
			if logs.Len() != len(tt.want) {
				t.Errorf("logged %d warnings, want %d", logs.Len(), len(tt.want))
			}
		})
	}
}

func TestValidateDefaultSkeleton(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	got := Validate(parseSample(t).Titles(), DefaultSkeleton(), zap.New(core))
	if len(got) != 1 || !strings.Contains(got[0], "参考文献") {
		t.Errorf("Validate() = %q", got)
	}
	if logs.FilterMessage("Unmatched required sections").Len() != 1 {
		t.Error("unmatched sections not logged")
	}
}
