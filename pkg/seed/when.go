package seed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// When is a seed date: either absolute ("2026-01-10", RFC 3339) or an
// offset from the load time ("now", "+3d", "-1d", "+12h", "+1d6h").
type When struct {
	abs    time.Time
	offset time.Duration
	rel    bool
}

// At returns the absolute When for t.
func At(t time.Time) When {
	return When{abs: t}
}

var offsetRegex = regexp.MustCompile(`(\d+)([dhm])`)

// ParseWhen parses the textual forms accepted by When.
func ParseWhen(s string) (When, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "now" || s == "today":
		return When{rel: true}, nil
	case strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-"):
		d, err := parseOffset(s[1:])
		if err != nil {
			return When{}, err
		}
		if s[0] == '-' {
			d = -d
		}
		return When{offset: d, rel: true}, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return When{abs: t}, nil
		}
	}
	return When{}, fmt.Errorf("invalid seed date %q", s)
}

func parseOffset(s string) (time.Duration, error) {
	matches := offsetRegex.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 || strings.Join(flatten(matches), "") != s {
		return 0, fmt.Errorf("invalid seed offset %q", s)
	}

	var total time.Duration
	for _, m := range matches {
		n, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "d":
			total += time.Duration(n) * 24 * time.Hour
		case "h":
			total += time.Duration(n) * time.Hour
		case "m":
			total += time.Duration(n) * time.Minute
		}
	}
	return total, nil
}

func flatten(matches [][]string) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m[0]
	}
	return out
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *When) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: seed date must be a scalar", value.Line)
	}
	parsed, err := ParseWhen(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*w = parsed
	return nil
}

// Resolve returns the instant w denotes when the seed is loaded at now.
func (w When) Resolve(now time.Time) time.Time {
	if w.rel {
		return now.Add(w.offset)
	}
	return w.abs
}

// MarshalYAML implements yaml.Marshaler. Relative dates keep their offset
// form, rounded down to the minute.
func (w When) MarshalYAML() (interface{}, error) {
	if !w.rel {
		return w.abs.Format(time.RFC3339Nano), nil
	}
	if w.offset == 0 {
		return "now", nil
	}

	sign, d := "+", w.offset
	if d < 0 {
		sign, d = "-", -d
	}
	var b strings.Builder
	b.WriteString(sign)
	for _, u := range []struct {
		unit string
		size time.Duration
	}{{"d", 24 * time.Hour}, {"h", time.Hour}, {"m", time.Minute}} {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.unit)
			d -= n * u.size
		}
	}
	if b.Len() == 1 {
		b.WriteString("0m")
	}
	return b.String(), nil
}
