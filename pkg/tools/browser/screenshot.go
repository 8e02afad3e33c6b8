package browser

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// Screenshot captures the current viewport as PNG. When MaxWidth is set and
// the capture is wider, it is downscaled proportionally; vision models do
// not need full-resolution captures and smaller payloads keep request sizes
// down. When Path is set the (possibly downscaled) capture is also written
// to disk.
func (s *Session) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	s.UpdateLastUsed()

	data, err := s.Page.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	if opts.MaxWidth > 0 {
		data, err = downscalePNG(data, opts.MaxWidth)
		if err != nil {
			return nil, err
		}
	}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating screenshot directory: %w", err)
		}
		if err := os.WriteFile(opts.Path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing screenshot: %w", err)
		}
	}
	return data, nil
}

// downscalePNG resizes a PNG to at most maxWidth pixels wide, preserving
// aspect ratio. Captures already within bounds pass through untouched.
func downscalePNG(data []byte, maxWidth int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}
	if img.Bounds().Dx() <= maxWidth {
		return data, nil
	}

	scaled := resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding screenshot: %w", err)
	}
	return buf.Bytes(), nil
}
