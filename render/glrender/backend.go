// Package glrender is the OpenGL 4.3 side of the engine: the texture
// array backend and the system that draws the viewport tree and scene.
// Everything here must run on the thread that owns the GL context.
package glrender

import (
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/mogaika/fray/render"
	"github.com/mogaika/fray/utils"
)

// Backend implements render.Backend on GL texture arrays. The registry
// in front of it has already validated shapes and bounds, so failures
// here are GL-level only.
type Backend struct {
	textures map[render.TextureArrayID]uint32
}

func NewBackend() *Backend {
	return &Backend{textures: make(map[render.TextureArrayID]uint32)}
}

func glTarget(k render.ArrayKind) uint32 {
	if k == render.CubemapArray {
		return gl.TEXTURE_CUBE_MAP_ARRAY
	}
	return gl.TEXTURE_2D_ARRAY
}

func glFormats(f render.PixelFormat) (internal uint32, format uint32, err error) {
	switch f {
	case render.FormatRGB8:
		return gl.RGB8, gl.RGB, nil
	case render.FormatR8:
		return gl.R8, gl.RED, nil
	}
	return 0, 0, errors.Errorf("No GL mapping for pixel format %v", f)
}

func glFilter(m render.FilterMode) int32 {
	if m == render.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

// TextureName returns the GL texture behind a logical array id.
func (b *Backend) TextureName(id render.TextureArrayID) (uint32, bool) {
	tex, ok := b.textures[id]
	return tex, ok
}

func (b *Backend) CreateArray(id render.TextureArrayID, info render.TextureArrayInfo) error {
	if _, ok := b.textures[id]; ok {
		return errors.Errorf("Array %v already has a texture", id)
	}
	internal, _, err := glFormats(info.Format)
	if err != nil {
		return err
	}
	target := glTarget(info.Kind)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(target, tex)
	gl.TexStorage3D(target, info.Levels, internal,
		int32(info.Width), int32(info.Height), int32(info.Depth()))
	gl.BindTexture(target, 0)

	b.textures[id] = tex
	log.Printf("[glrender] Created %v texture %dx%dx%d (array %d, gl name %d)",
		info.Kind, info.Width, info.Height, info.Depth(), id, tex)
	return nil
}

func (b *Backend) ClearArray(id render.TextureArrayID, info render.TextureArrayInfo, color utils.ColorFloat) error {
	tex, ok := b.textures[id]
	if !ok {
		return errors.Errorf("Array %v has no texture", id)
	}
	_, format, err := glFormats(info.Format)
	if err != nil {
		return err
	}
	target := glTarget(info.Kind)

	// ClearTexImage needs GL 4.4; fill slice by slice instead.
	px := color.RGB8()
	bpp := info.Format.BytesPerPixel()
	slice := make([]byte, int(info.Width)*int(info.Height)*bpp)
	for i := 0; i < len(slice); i += bpp {
		copy(slice[i:i+bpp], px[:bpp])
	}

	gl.BindTexture(target, tex)
	for z := uint32(0); z < info.Depth(); z++ {
		gl.TexSubImage3D(target, 0, 0, 0, int32(z),
			int32(info.Width), int32(info.Height), 1, format, gl.UNSIGNED_BYTE, gl.Ptr(slice))
	}
	gl.BindTexture(target, 0)
	return nil
}

func (b *Backend) SubImageWrite(id render.TextureArrayID, info render.TextureArrayInfo, z uint32, img render.Image) error {
	tex, ok := b.textures[id]
	if !ok {
		return errors.Errorf("Array %v has no texture", id)
	}
	_, format, err := glFormats(img.Format)
	if err != nil {
		return err
	}
	target := glTarget(info.Kind)

	gl.BindTexture(target, tex)
	gl.TexSubImage3D(target, 0, 0, 0, int32(z),
		int32(img.Width), int32(img.Height), 1, format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(target, 0)
	return nil
}

func (b *Backend) SetFilters(id render.TextureArrayID, info render.TextureArrayInfo, min, mag render.FilterMode) error {
	tex, ok := b.textures[id]
	if !ok {
		return errors.Errorf("Array %v has no texture", id)
	}
	target := glTarget(info.Kind)

	gl.BindTexture(target, tex)
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, glFilter(min))
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, glFilter(mag))
	gl.BindTexture(target, 0)
	return nil
}

func (b *Backend) DeleteArray(id render.TextureArrayID) {
	if tex, ok := b.textures[id]; ok {
		gl.DeleteTextures(1, &tex)
		delete(b.textures, id)
	}
}
