package merge

import "strings"

// appendLines appends every line of planned that existing lacks. Lines are
// compared with surrounding whitespace trimmed; blank planned lines are
// ignored. It returns the new content and the lines added.
func appendLines(existing, planned []byte) ([]byte, []string) {
	have := make(map[string]bool)
	for _, l := range strings.Split(string(existing), "\n") {
		have[strings.TrimSpace(l)] = true
	}

	var added []string
	for _, l := range strings.Split(string(planned), "\n") {
		l = strings.TrimSpace(l)
		if l == "" || have[l] {
			continue
		}
		have[l] = true
		added = append(added, l)
	}
	if len(added) == 0 {
		return existing, nil
	}

	var b strings.Builder
	b.Write(existing)
	// Ensure there's a newline before our addition.
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		b.WriteByte('\n')
	}
	for _, l := range added {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return []byte(b.String()), added
}
