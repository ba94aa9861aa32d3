package imgrender

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int, fill color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRenderDimensions(t *testing.T) {
	t.Parallel()

	data := pngBytes(t, 64, 48, color.RGBA{R: 200, G: 40, B: 90, A: 255})

	cases := []struct {
		cols, rows int
	}{
		{cols: 16, rows: 6},
		{cols: 1, rows: 1},
		{cols: 100, rows: 3}, // upsampling is fine, nearest neighbor repeats
	}
	for _, tc := range cases {
		out, err := Render(data, tc.cols, tc.rows)
		if err != nil {
			t.Fatalf("Render(%dx%d): %v", tc.cols, tc.rows, err)
		}
		lines := strings.Split(out, "\n")
		if len(lines) != tc.rows {
			t.Fatalf("Render(%dx%d): %d lines", tc.cols, tc.rows, len(lines))
		}
		for i, line := range lines {
			if got := strings.Count(line, upperHalfBlock); got != tc.cols {
				t.Fatalf("Render(%dx%d): line %d has %d cells", tc.cols, tc.rows, i, got)
			}
		}
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	t.Parallel()

	data := pngBytes(t, 4, 4, color.White)
	if _, err := Render(data, 0, 5); err == nil {
		t.Fatalf("expected error for zero cols")
	}
	if _, err := Render(data, 5, -1); err == nil {
		t.Fatalf("expected error for negative rows")
	}
	if _, err := Render([]byte("not an image"), 4, 4); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := Render(nil, 4, 4); err == nil {
		t.Fatalf("expected decode error for nil payload")
	}
}
