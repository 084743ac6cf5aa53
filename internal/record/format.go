package record

import (
	"strings"
	"time"
)

// PreviewLength is the maximum number of runes in a display preview.
const PreviewLength = 60

// Preview returns a single-line display preview of the record's content.
// Newlines are replaced with a return symbol and the result is truncated
// to PreviewLength runes with an ellipsis.
func (r Record) Preview() string {
	text := strings.ReplaceAll(r.Content, "\r", "")
	text = strings.ReplaceAll(text, "\n", "↵")

	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength]) + "..."
}

// FormatTimestamp renders the record's capture time relative to now:
// "Today 15:04:05", "Yesterday 15:04", or "Jan 2 15:04". Records without
// a timestamp render as an empty string.
func (r Record) FormatTimestamp(now time.Time) string {
	if r.CreatedAt == 0 {
		return ""
	}

	t := time.Unix(r.CreatedAt, 0)
	ny, nm, nd := now.Date()
	ty, tm, td := t.Date()

	if ny == ty && nm == tm && nd == td {
		return "Today " + t.Format("15:04:05")
	}

	yy, ym, yd := now.AddDate(0, 0, -1).Date()
	if yy == ty && ym == tm && yd == td {
		return "Yesterday " + t.Format("15:04")
	}

	return t.Format("Jan 2 15:04")
}
