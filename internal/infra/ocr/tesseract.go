package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Engine shells out to the tesseract binary. Tesseract has no stable C-free
// Go binding, so the CLI is the integration point.
type Engine struct {
	binary string
}

// NewEngine constructs an engine around the given binary path. An empty path
// falls back to whatever "tesseract" resolves to on PATH.
func NewEngine(binary string) *Engine {
	if strings.TrimSpace(binary) == "" {
		binary = "tesseract"
	}
	return &Engine{binary: binary}
}

// Run recognizes the image at path using the given tesseract language code.
// Page segmentation mode 6 assumes a single uniform block of text, which
// suits document scans.
func (e *Engine) Run(ctx context.Context, imagePath, lang string) (string, error) {
	if lang == "" {
		lang = "eng"
	}

	cmd := exec.CommandContext(ctx, e.binary, imagePath, "stdout", "-l", lang, "--psm", "6")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", fmt.Errorf("tesseract: %w", err)
		}
		return "", fmt.Errorf("tesseract: %w: %s", err, detail)
	}

	return stdout.String(), nil
}
