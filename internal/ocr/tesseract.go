package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"
)

// Tesseract runs the tesseract binary over stdin/stdout. The binary is
// resolved once at construction so a missing engine is a startup failure,
// not a per-page surprise.
type Tesseract struct {
	binary string
}

// NewTesseract resolves the tesseract executable. An empty path looks up
// "tesseract" on PATH.
func NewTesseract(path string) (*Tesseract, error) {
	if path == "" {
		path = "tesseract"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("tesseract binary %q not found: %w", path, err)
	}
	return &Tesseract{binary: resolved}, nil
}

// Recognize implements Engine.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return "", fmt.Errorf("failed to encode page for recognition: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.binary, "stdin", "stdout")
	cmd.Stdin = &in
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("tesseract failed: %w: %s", err, detail)
		}
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	return out.String(), nil
}
