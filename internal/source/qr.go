package source

import (
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

// QRSource renders text payloads as QR codes: dark modules are opaque
// black, light modules and the quiet zone fully transparent.
type QRSource struct {
	payloads []string
	scale    int
	level    qrcode.RecoveryLevel
}

// NewQRSource creates one frame per payload. scale is the module size in
// pixels (minimum 1).
func NewQRSource(scale int, payloads ...string) *QRSource {
	return &QRSource{payloads: payloads, scale: max(scale, 1), level: qrcode.Medium}
}

func (q *QRSource) FrameCount() int {
	return len(q.payloads)
}

func (q *QRSource) FrameName(index int) string {
	return fmt.Sprintf("qr_%d", index+1)
}

func (q *QRSource) Frame(index int) (image.Image, error) {
	code, err := qrcode.New(q.payloads[index], q.level)
	if err != nil {
		return nil, fmt.Errorf("qr %d: %w", index+1, err)
	}
	return BitmapImage(code.Bitmap(), q.scale), nil
}

func (q *QRSource) Close() error {
	return nil
}

// BitmapImage draws a row-major bitmap (true = solid) as an NRGBA image with
// scale×scale pixels per cell.
func BitmapImage(bits [][]bool, scale int) *image.NRGBA {
	h := len(bits)
	w := 0
	if h > 0 {
		w = len(bits[0])
	}
	img := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
	ink := color.NRGBA{A: 255}
	for y, row := range bits {
		for x, on := range row {
			if !on {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetNRGBA(x*scale+dx, y*scale+dy, ink)
				}
			}
		}
	}
	return img
}
