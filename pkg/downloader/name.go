package downloader

import "strings"

// SafeName makes a dir name out of a game title.
// Only ASCII letters, digits, '-' and '_' survive, everything else
// becomes '_'; inner spaces too, outer ones are cut.
func SafeName(title string) string {
	var sb strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	name := strings.ReplaceAll(strings.TrimSpace(sb.String()), " ", "_")
	if name == "" {
		return "_"
	}
	return name
}
