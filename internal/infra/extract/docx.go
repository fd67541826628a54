package extract

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
)

// DOCXExtractor concatenates the text of each paragraph in document order.
type DOCXExtractor struct{}

func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (e *DOCXExtractor) Extract(_ context.Context, path, _ string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", ingest.NewFailure(ingest.KindExtractionError, "failed to open docx", err)
	}
	defer doc.Close()

	text, err := paragraphText(doc.Editable().GetContent())
	if err != nil {
		return "", ingest.NewFailure(ingest.KindExtractionError, "failed to parse docx body", err)
	}
	return text, nil
}

// paragraphText walks the WordprocessingML body, collecting run text and
// joining paragraphs with newlines.
func paragraphText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		builder   strings.Builder
		paragraph strings.Builder
		inRunText bool
		first     = true
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRunText = true
			}
		case xml.CharData:
			if inRunText {
				paragraph.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRunText = false
			case "p":
				if !first {
					builder.WriteString("\n")
				}
				builder.WriteString(paragraph.String())
				paragraph.Reset()
				first = false
			}
		}
	}

	// trailing run text outside any paragraph
	if paragraph.Len() > 0 {
		if !first {
			builder.WriteString("\n")
		}
		builder.WriteString(paragraph.String())
	}

	return builder.String(), nil
}
