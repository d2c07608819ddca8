package frontend

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// MatchAny is the wildcard pattern: any number of sections, including none,
// up to the next required one.
const MatchAny = ".*"

// DefaultSkeleton is expected order of level 1 sections of a thesis.
func DefaultSkeleton() []string {
	return []string{"摘要", "Abstract", "引言", MatchAny, "结论", "参考文献", MatchAny, "修改记录", "致谢"}
}

type matcher struct {
	pattern string
	re      *regexp.Regexp
}

func compile(patterns []string) []matcher {
	out := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			re = regexp.MustCompile("^" + regexp.QuoteMeta(p) + "$")
		}
		out = append(out, matcher{pattern: p, re: re})
	}
	return out
}

// Validate compares section titles against expected patterns walking both
// lists in lockstep. Titles which do not match the next required pattern are
// reported as unexpected unless a wildcard is being consumed. Running out of
// titles while required patterns remain is reported once. Problems are
// logged and returned, they never stop generation.
func Validate(titles, patterns []string, log *zap.Logger) []string {
	var warnings []string
	warn := func(msg string, fields ...zap.Field) {
		log.Warn(msg, fields...)
		var sb strings.Builder
		sb.WriteString(msg)
		for _, f := range fields {
			fmt.Fprintf(&sb, " %s=%q", f.Key, f.String)
		}
		warnings = append(warnings, sb.String())
	}
	unmatched := func(rest []matcher) {
		names := make([]string, 0, len(rest))
		for _, m := range rest {
			names = append(names, m.pattern)
		}
		warn("Unmatched required sections", zap.String("sections", strings.Join(names, ", ")))
	}

	rest := compile(patterns)
	titles = normalizeTitles(titles)
	i := 0
	for len(rest) > 0 {
		want, step := rest[0], 1
		if want.pattern == MatchAny {
			if len(rest) == 1 {
				return warnings
			}
			want, step = rest[1], 2
		}
		if i >= len(titles) {
			unmatched(rest)
			return warnings
		}
		for !want.re.MatchString(titles[i]) {
			if step == 1 {
				warn("Unexpected section", zap.String("title", titles[i]))
			}
			i++
			if i == len(titles) {
				unmatched(rest)
				return warnings
			}
		}
		rest = rest[step:]
		i++
	}
	return warnings
}

// normalizeTitles drops spaces used in templates to stretch short headings
// ("引    言").
func normalizeTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		out = append(out, strings.Join(strings.Fields(t), ""))
	}
	return out
}
