package asset

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/mogaika/fray/render"
)

// DecodeRGB8 decodes raw file bytes (png or jpeg) and repacks the
// pixels as tight 24bpp RGB rows.
func DecodeRGB8(data []byte) (render.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return render.Image{}, errors.Wrap(err, "decode image")
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Normalize whatever subsampled/paletted form the decoder gave us.
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		srcRow := rgba.Pix[y*rgba.Stride:]
		dstRow := pix[y*w*3:]
		for x := 0; x < w; x++ {
			dstRow[x*3+0] = srcRow[x*4+0]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}

	return render.Image{
		Width:  uint32(w),
		Height: uint32(h),
		Format: render.FormatRGB8,
		Pix:    pix,
	}, nil
}
