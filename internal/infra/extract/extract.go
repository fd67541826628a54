// Package extract implements the per-format file extraction strategies the
// ingest dispatcher routes to. Every extractor converts underlying library
// faults into ingest failures; nothing panics or errors across the boundary
// unclassified.
package extract

import "context"

// Recognizer turns an image file into text. Satisfied by ocr.Engine.
type Recognizer interface {
	Run(ctx context.Context, imagePath, lang string) (string, error)
}
