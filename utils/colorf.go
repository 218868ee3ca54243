package utils

import "math/rand"

type ColorFloat [4]float32

func (c ColorFloat) RGBA() (r, g, b, a uint32) {
	const mf = float32(256*256 - 1)
	r = uint32(c[0] * mf)
	g = uint32(c[1] * mf)
	b = uint32(c[2] * mf)
	a = uint32(c[3] * mf)
	return
}

// RGB8 drops alpha and packs to bytes, used for 24bpp texture clears.
func (c ColorFloat) RGB8() [3]uint8 {
	return [3]uint8{
		uint8(c[0] * 255),
		uint8(c[1] * 255),
		uint8(c[2] * 255),
	}
}

func NewColorFloat(r, g, b float32) ColorFloat {
	return ColorFloat{r, g, b, 1.0}
}

func NewColorFloatA(c []float32) ColorFloat {
	return ColorFloat{c[0], c[1], c[2], c[3]}
}

func GreyColorFloat(v float32) ColorFloat {
	return ColorFloat{v, v, v, 1.0}
}

func RandomOpaqueColor() ColorFloat {
	return ColorFloat{
		float32(rand.Intn(256)) / 255.0,
		float32(rand.Intn(256)) / 255.0,
		float32(rand.Intn(256)) / 255.0,
		1.0,
	}
}
