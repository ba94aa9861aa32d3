// Package imgrender turns thumbnail bytes into fixed-size blocks of colored
// half-cells, the display-ready form the preview cache stores.
package imgrender

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"
)

// upperHalfBlock shows two pixels per cell: foreground paints the top half,
// background the bottom.
const upperHalfBlock = "▀"

// Render decodes data and samples it down to cols x rows terminal cells.
// Aspect ratio is not preserved; cards are a fixed size and scene thumbnails
// are near-square.
func Render(data []byte, cols, rows int) (string, error) {
	if cols <= 0 || rows <= 0 {
		return "", fmt.Errorf("invalid cell size %dx%d", cols, rows)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode thumbnail: %w", err)
	}

	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return "", fmt.Errorf("empty image %dx%d", srcW, srcH)
	}

	// Two pixel rows per text row.
	pxH := rows * 2
	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			top := sample(img, bounds, col, row*2, cols, pxH)
			bottom := sample(img, bounds, col, row*2+1, cols, pxH)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(upperHalfBlock)
			b.WriteString(cell)
		}
	}
	return b.String(), nil
}

// sample nearest-neighbor maps cell coordinates onto the source image and
// returns the pixel as a hex color.
func sample(img image.Image, bounds image.Rectangle, x, y, gridW, gridH int) string {
	srcX := bounds.Min.X + x*bounds.Dx()/gridW
	srcY := bounds.Min.Y + y*bounds.Dy()/gridH
	if srcX >= bounds.Max.X {
		srcX = bounds.Max.X - 1
	}
	if srcY >= bounds.Max.Y {
		srcY = bounds.Max.Y - 1
	}
	r, g, b, _ := img.At(srcX, srcY).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
