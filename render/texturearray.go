// Package render owns the GPU texture array bookkeeping. Arrays are
// allocated once, up front, with a fixed shape; all later writes are
// validated against that shape before they reach the GPU backend.
package render

import (
	"github.com/pkg/errors"

	"github.com/mogaika/fray/utils"
)

// TextureArrayID is the logical id of one GPU texture array.
type TextureArrayID uint32

type ArrayKind int

const (
	Tex2DArray ArrayKind = iota
	CubemapArray
)

func (k ArrayKind) String() string {
	if k == Tex2DArray {
		return "2darray"
	}
	return "cubemaparray"
}

type PixelFormat int

const (
	FormatRGB8 PixelFormat = iota
	FormatR8
)

// BytesPerPixel for tightly packed client-side data.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGB8:
		return 3
	case FormatR8:
		return 1
	}
	return 0
}

func (f PixelFormat) String() string {
	switch f {
	case FormatRGB8:
		return "rgb8"
	case FormatR8:
		return "r8"
	}
	return "unknown"
}

type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// TextureArrayInfo is the immutable shape of one array: every incoming
// image is validated against it.
type TextureArrayInfo struct {
	Kind   ArrayKind
	Levels int32
	Format PixelFormat
	Width  uint32
	Height uint32
	// SubResources is the cubemap count for CubemapArray, the slot
	// count for Tex2DArray.
	SubResources uint32
}

const cubemapFaces = 6

// Depth is the z extent of the backing GL storage.
func (i TextureArrayInfo) Depth() uint32 {
	if i.Kind == CubemapArray {
		return i.SubResources * cubemapFaces
	}
	return i.SubResources
}

// SubResource addresses one writable unit: a 2D slot, or one face of
// one cubemap layer. Face must be -1 for 2D arrays.
type SubResource struct {
	Layer uint32
	Face  int32
}

// Image is a decoded, tightly packed client-side image.
type Image struct {
	Width  uint32
	Height uint32
	Format PixelFormat
	Pix    []byte
}

// Backend is the GPU surface the registry writes into. The GL
// implementation lives in render/glrender; tests use a recording fake.
type Backend interface {
	CreateArray(id TextureArrayID, info TextureArrayInfo) error
	ClearArray(id TextureArrayID, info TextureArrayInfo, color utils.ColorFloat) error
	SubImageWrite(id TextureArrayID, info TextureArrayInfo, z uint32, img Image) error
	SetFilters(id TextureArrayID, info TextureArrayInfo, min, mag FilterMode) error
	DeleteArray(id TextureArrayID)
}

// Registry tracks every allocated texture array and performs the
// bounds/shape validation in front of the backend. Single-threaded,
// owned by the render loop.
type Registry struct {
	backend Backend
	arrays  map[TextureArrayID]TextureArrayInfo
}

func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend: backend,
		arrays:  make(map[TextureArrayID]TextureArrayInfo),
	}
}

// Create allocates a new array. Shape errors here are configuration
// errors and should abort startup.
func (r *Registry) Create(id TextureArrayID, info TextureArrayInfo) error {
	if _, exists := r.arrays[id]; exists {
		return errors.Errorf("texture array %d already exists", id)
	}
	if info.Width == 0 || info.Height == 0 {
		return errors.Errorf("texture array %d has empty extent %dx%d", id, info.Width, info.Height)
	}
	if info.SubResources == 0 {
		return errors.Errorf("texture array %d has zero sub-resources", id)
	}
	if info.Levels < 1 {
		return errors.Errorf("texture array %d has invalid level count %d", id, info.Levels)
	}
	if err := r.backend.CreateArray(id, info); err != nil {
		return errors.Wrapf(err, "create texture array %d", id)
	}
	r.arrays[id] = info
	return nil
}

func (r *Registry) Info(id TextureArrayID) (TextureArrayInfo, bool) {
	info, ok := r.arrays[id]
	return info, ok
}

func (r *Registry) Clear(id TextureArrayID, color utils.ColorFloat) error {
	info, ok := r.arrays[id]
	if !ok {
		return errors.Errorf("clear of unknown texture array %d", id)
	}
	return r.backend.ClearArray(id, info, color)
}

func (r *Registry) SetFilters(id TextureArrayID, min, mag FilterMode) error {
	info, ok := r.arrays[id]
	if !ok {
		return errors.Errorf("filter change on unknown texture array %d", id)
	}
	return r.backend.SetFilters(id, info, min, mag)
}

// zIndex maps a sub-resource onto the backing z slice.
func (r *Registry) zIndex(info TextureArrayInfo, sub SubResource) (uint32, error) {
	if sub.Layer >= info.SubResources {
		return 0, errors.Errorf("layer %d out of range (array has %d)", sub.Layer, info.SubResources)
	}
	switch info.Kind {
	case CubemapArray:
		if sub.Face < 0 || sub.Face >= cubemapFaces {
			return 0, errors.Errorf("cubemap face %d out of range", sub.Face)
		}
		return sub.Layer*cubemapFaces + uint32(sub.Face), nil
	default:
		if sub.Face != -1 {
			return 0, errors.Errorf("2d array write with face %d", sub.Face)
		}
		return sub.Layer, nil
	}
}

// Write uploads one decoded image into one sub-resource. The image's
// extent and channel layout must match the array's declared shape: the
// array was sized for exactly one asset shape.
func (r *Registry) Write(id TextureArrayID, sub SubResource, img Image) error {
	info, ok := r.arrays[id]
	if !ok {
		return errors.Errorf("write into unknown texture array %d", id)
	}
	z, err := r.zIndex(info, sub)
	if err != nil {
		return errors.Wrapf(err, "texture array %d", id)
	}
	if img.Width != info.Width || img.Height != info.Height {
		return errors.Errorf("texture array %d wants %dx%d, image is %dx%d",
			id, info.Width, info.Height, img.Width, img.Height)
	}
	if img.Format != info.Format {
		return errors.Errorf("texture array %d wants %v pixels, image is %v",
			id, info.Format, img.Format)
	}
	if want := int(img.Width) * int(img.Height) * info.Format.BytesPerPixel(); len(img.Pix) != want {
		return errors.Errorf("texture array %d: image has %d bytes, expected %d",
			id, len(img.Pix), want)
	}
	return r.backend.SubImageWrite(id, info, z, img)
}

// Delete releases the array. Only used on shutdown.
func (r *Registry) Delete(id TextureArrayID) {
	if _, ok := r.arrays[id]; ok {
		r.backend.DeleteArray(id)
		delete(r.arrays, id)
	}
}
