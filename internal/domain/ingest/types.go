package ingest

import "strings"

// Length selects the summary word budget.
type Length string

const (
	LengthShort  Length = "Short"
	LengthMedium Length = "Medium"
	LengthLong   Length = "Long"
)

// WordBudget resolves the target word ceiling for the summary.
func (l Length) WordBudget() int {
	switch l {
	case LengthShort:
		return 100
	case LengthLong:
		return 300
	default:
		return 200
	}
}

// ParseLength normalizes a client supplied value, defaulting to Medium.
func ParseLength(raw string) Length {
	switch Length(strings.TrimSpace(raw)) {
	case LengthShort:
		return LengthShort
	case LengthLong:
		return LengthLong
	default:
		return LengthMedium
	}
}

// Format selects the summary presentation style.
type Format string

const (
	FormatParagraph    Format = "Paragraph"
	FormatBulletPoints Format = "BulletPoints"
)

// Fragment returns the instruction fragment for the prompt.
func (f Format) Fragment() string {
	if f == FormatBulletPoints {
		return "in bullet points"
	}
	return "as a paragraph"
}

// ParseFormat normalizes a client supplied value, defaulting to Paragraph.
func ParseFormat(raw string) Format {
	if Format(strings.TrimSpace(raw)) == FormatBulletPoints {
		return FormatBulletPoints
	}
	return FormatParagraph
}

// File is an uploaded blob together with its declared filename. Only the
// extension of the name is trusted for routing.
type File struct {
	Name    string
	Content []byte
}

// Request carries one submission through the pipeline. At most one of Text,
// URL and File is effective; selection is by fixed priority, not by client
// intent signaling.
type Request struct {
	Text           string
	URL            string
	File           *File
	InputLanguage  string
	OutputLanguage string
	Length         Length
	Format         Format
}
