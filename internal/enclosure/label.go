package enclosure

import "strings"

// FormatLabel returns the display label for an enclosure: the
// user-assigned label when one is set, otherwise the hardware model,
// otherwise the raw id.
func FormatLabel(e *Enclosure) string {
	if e == nil {
		return ""
	}
	if label := strings.TrimSpace(e.Label); label != "" {
		return label
	}
	if e.Model != "" {
		return e.Model
	}
	return e.ID
}
