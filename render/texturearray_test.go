package render

import (
	"testing"

	"github.com/mogaika/fray/utils"
)

type recordedWrite struct {
	id  TextureArrayID
	z   uint32
	img Image
}

// fakeBackend records every call so tests can assert on upload order
// and destinations.
type fakeBackend struct {
	created map[TextureArrayID]TextureArrayInfo
	writes  []recordedWrite
	clears  []TextureArrayID
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{created: make(map[TextureArrayID]TextureArrayInfo)}
}

func (b *fakeBackend) CreateArray(id TextureArrayID, info TextureArrayInfo) error {
	b.created[id] = info
	return nil
}

func (b *fakeBackend) ClearArray(id TextureArrayID, info TextureArrayInfo, color utils.ColorFloat) error {
	b.clears = append(b.clears, id)
	return nil
}

func (b *fakeBackend) SubImageWrite(id TextureArrayID, info TextureArrayInfo, z uint32, img Image) error {
	b.writes = append(b.writes, recordedWrite{id: id, z: z, img: img})
	return nil
}

func (b *fakeBackend) SetFilters(id TextureArrayID, info TextureArrayInfo, min, mag FilterMode) error {
	return nil
}

func (b *fakeBackend) DeleteArray(id TextureArrayID) {
	delete(b.created, id)
}

func rgbImage(w, h uint32) Image {
	return Image{
		Width:  w,
		Height: h,
		Format: FormatRGB8,
		Pix:    make([]byte, int(w)*int(h)*3),
	}
}

func TestCreateValidation(t *testing.T) {
	r := NewRegistry(newFakeBackend())
	info := TextureArrayInfo{Kind: CubemapArray, Levels: 1, Format: FormatRGB8, Width: 4, Height: 4, SubResources: 2}

	if err := r.Create(1, info); err != nil {
		t.Fatal(err)
	}
	if err := r.Create(1, info); err == nil {
		t.Errorf("duplicate create did not fail")
	}

	bad := info
	bad.SubResources = 0
	if err := r.Create(2, bad); err == nil {
		t.Errorf("zero sub-resources accepted")
	}
	bad = info
	bad.Width = 0
	if err := r.Create(3, bad); err == nil {
		t.Errorf("empty extent accepted")
	}
}

func TestDepth(t *testing.T) {
	cm := TextureArrayInfo{Kind: CubemapArray, SubResources: 4}
	if cm.Depth() != 24 {
		t.Errorf("cubemap depth=%d, expected 24", cm.Depth())
	}
	flat := TextureArrayInfo{Kind: Tex2DArray, SubResources: 4}
	if flat.Depth() != 4 {
		t.Errorf("2d array depth=%d, expected 4", flat.Depth())
	}
}

func TestWriteDestinations(t *testing.T) {
	b := newFakeBackend()
	r := NewRegistry(b)
	if err := r.Create(7, TextureArrayInfo{Kind: CubemapArray, Levels: 1, Format: FormatRGB8, Width: 2, Height: 2, SubResources: 3}); err != nil {
		t.Fatal(err)
	}

	writes := []struct {
		sub SubResource
		z   uint32
	}{
		{SubResource{Layer: 0, Face: 0}, 0},
		{SubResource{Layer: 0, Face: 5}, 5},
		{SubResource{Layer: 2, Face: 1}, 13},
	}
	for _, w := range writes {
		if err := r.Write(7, w.sub, rgbImage(2, 2)); err != nil {
			t.Fatal(err)
		}
	}
	if len(b.writes) != len(writes) {
		t.Fatalf("%d writes recorded, expected %d", len(b.writes), len(writes))
	}
	for i, w := range writes {
		if b.writes[i].z != w.z {
			t.Errorf("write %d went to z=%d, expected %d", i, b.writes[i].z, w.z)
		}
	}
}

var writeErrorTests = []struct {
	name string
	sub  SubResource
	img  Image
}{
	{"layer out of range", SubResource{Layer: 3, Face: 0}, rgbImage(2, 2)},
	{"face out of range", SubResource{Layer: 0, Face: 6}, rgbImage(2, 2)},
	{"negative face on cubemap", SubResource{Layer: 0, Face: -1}, rgbImage(2, 2)},
	{"extent mismatch", SubResource{Layer: 0, Face: 0}, rgbImage(4, 4)},
	{"format mismatch", SubResource{Layer: 0, Face: 0}, Image{Width: 2, Height: 2, Format: FormatR8, Pix: make([]byte, 4)}},
	{"short pixel data", SubResource{Layer: 0, Face: 0}, Image{Width: 2, Height: 2, Format: FormatRGB8, Pix: make([]byte, 5)}},
}

func TestWriteValidation(t *testing.T) {
	b := newFakeBackend()
	r := NewRegistry(b)
	if err := r.Create(1, TextureArrayInfo{Kind: CubemapArray, Levels: 1, Format: FormatRGB8, Width: 2, Height: 2, SubResources: 3}); err != nil {
		t.Fatal(err)
	}

	for _, test := range writeErrorTests {
		if err := r.Write(1, test.sub, test.img); err == nil {
			t.Errorf("%s: write accepted", test.name)
		}
	}
	if err := r.Write(99, SubResource{Face: 0}, rgbImage(2, 2)); err == nil {
		t.Errorf("write into unknown array accepted")
	}
	if len(b.writes) != 0 {
		t.Errorf("%d writes reached the backend", len(b.writes))
	}
}

func TestTex2DFaceValidation(t *testing.T) {
	r := NewRegistry(newFakeBackend())
	if err := r.Create(1, TextureArrayInfo{Kind: Tex2DArray, Levels: 1, Format: FormatR8, Width: 2, Height: 2, SubResources: 2}); err != nil {
		t.Fatal(err)
	}
	img := Image{Width: 2, Height: 2, Format: FormatR8, Pix: make([]byte, 4)}
	if err := r.Write(1, SubResource{Layer: 1, Face: 0}, img); err == nil {
		t.Errorf("2d array write with a cubemap face accepted")
	}
	if err := r.Write(1, SubResource{Layer: 1, Face: -1}, img); err != nil {
		t.Errorf("valid 2d array write rejected: %v", err)
	}
}
