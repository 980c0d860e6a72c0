package shader

import (
	"strconv"
	"strings"
)

type structField struct {
	name     string
	typeName string
	// location is -1 when the field has no @location attribute.
	location int
	builtin  bool
}

// parseStructs returns every struct declaration keyed by name, fields in declaration order.
func parseStructs(cleaned string) map[string][]structField {
	out := make(map[string][]structField)
	for _, m := range structBlockRegex.FindAllStringSubmatch(cleaned, -1) {
		var fields []structField
		for _, part := range splitAtTopLevelCommas(m[2]) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			fm := fieldRegex.FindStringSubmatch(part)
			if fm == nil {
				continue
			}
			f := structField{
				name:     fm[1],
				typeName: strings.Join(strings.Fields(strings.TrimSuffix(strings.TrimSpace(fm[2]), ";")), ""),
				location: -1,
				builtin:  builtinRegex.MatchString(part),
			}
			if loc := locationRegex.FindStringSubmatch(part); loc != nil {
				f.location, _ = strconv.Atoi(loc[1])
			}
			fields = append(fields, f)
		}
		out[m[1]] = fields
	}
	return out
}

func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes /* ... */ comments, which may nest in WGSL.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

// splitAtTopLevelCommas splits at commas not nested inside angle brackets, so vec2<f32> style
// generic arguments stay intact.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
