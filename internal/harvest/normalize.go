package harvest

import "strings"

// Normalize prepares raw documentation text for the report: every line is
// independently left-trimmed, and a leading comment marker is doubled so it
// cannot be read as a section header. Total over all inputs.
func Normalize(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t")
		if strings.HasPrefix(line, "#") {
			line = "#" + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
