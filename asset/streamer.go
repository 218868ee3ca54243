// Package asset streams image files from disk into pre-allocated GPU
// texture arrays. Reads and decodes run on the mt worker pool; the
// render loop pumps completed requests into the registry once per
// frame and never blocks on an unfinished load.
package asset

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mogaika/fray/mt"
	"github.com/mogaika/fray/render"
)

// LoadError is the per-request outcome of a failed load: I/O error,
// decode error, or shape mismatch against the destination array. It
// never unwinds the frame loop; the failed sub-resource simply keeps
// its placeholder clear color.
type LoadError struct {
	Path  string
	Array render.TextureArrayID
	Sub   render.SubResource
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q into array %d (layer %d face %d): %v",
		e.Path, e.Array, e.Sub.Layer, e.Sub.Face, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Request is one in-flight load targeting one sub-resource.
type Request struct {
	future *mt.Future[render.Image]

	Path  string
	Array render.TextureArrayID
	Sub   render.SubResource
}

func (r *Request) Progress() mt.Progress {
	return r.future.Progress()
}

// PendingStatus is a progress snapshot of one still-pending request,
// reported in insertion order by Pump.
type PendingStatus struct {
	Path     string
	Array    render.TextureArrayID
	Sub      render.SubResource
	Progress mt.Progress
}

// Streamer tracks the pending request queue. The request list is fixed
// at startup; the worker pool is the only concurrency limiter.
type Streamer struct {
	pool     *mt.Pool
	registry *render.Registry

	pending    []*Request
	failures   []*LoadError
	integrated int
}

func NewStreamer(pool *mt.Pool, registry *render.Registry) *Streamer {
	return &Streamer{
		pool:     pool,
		registry: registry,
	}
}

// CubemapFaceSuffixes is the on-disk face naming convention, in z
// order: +X -X +Y -Y +Z -Z.
var CubemapFaceSuffixes = [6]string{"ft", "bk", "up", "dn", "rt", "lf"}

// QueueTexture schedules a load into one slot of a 2D texture array.
func (s *Streamer) QueueTexture(path string, array render.TextureArrayID, slot uint32) error {
	return s.queue(path, array, render.SubResource{Layer: slot, Face: -1})
}

// QueueCubemapFace schedules a load into one face of one cubemap.
func (s *Streamer) QueueCubemapFace(path string, array render.TextureArrayID, layer uint32, face int32) error {
	return s.queue(path, array, render.SubResource{Layer: layer, Face: face})
}

// QueueCubemapSet schedules all six faces of one cubemap, deriving the
// face paths as <dir>/<name>_<suffix>.<ext>.
func (s *Streamer) QueueCubemapSet(dir, name, ext string, array render.TextureArrayID, layer uint32) error {
	for face, suffix := range CubemapFaceSuffixes {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, suffix, ext))
		if err := s.QueueCubemapFace(path, array, layer, int32(face)); err != nil {
			return err
		}
	}
	return nil
}

// queue validates the destination against the array's declared shape
// before scheduling: capacity overruns are a startup configuration
// error, not a runtime condition.
func (s *Streamer) queue(path string, array render.TextureArrayID, sub render.SubResource) error {
	info, ok := s.registry.Info(array)
	if !ok {
		return errors.Errorf("queue %q: unknown texture array %d", path, array)
	}
	if sub.Layer >= info.SubResources {
		return errors.Errorf("queue %q: layer %d out of range (array %d has %d)",
			path, sub.Layer, array, info.SubResources)
	}
	if info.Kind == render.CubemapArray && (sub.Face < 0 || sub.Face > 5) {
		return errors.Errorf("queue %q: bad cubemap face %d", path, sub.Face)
	}
	if info.Kind == render.Tex2DArray && sub.Face != -1 {
		return errors.Errorf("queue %q: 2d array with face %d", path, sub.Face)
	}

	future := mt.Schedule(s.pool, path, func(report func(mt.Progress)) (render.Image, error) {
		data, err := mt.ReadFile(path, report)
		if err != nil {
			return render.Image{}, err
		}
		report(mt.Progress{Kind: mt.ProgressConverting})
		return DecodeRGB8(data)
	})

	s.pending = append(s.pending, &Request{
		future: future,
		Path:   path,
		Array:  array,
		Sub:    sub,
	})
	return nil
}

func (s *Streamer) PendingCount() int { return len(s.pending) }

func (s *Streamer) IntegratedCount() int { return s.integrated }

func (s *Streamer) Failures() []*LoadError { return s.failures }

// Pump integrates every completed request into the registry and
// reports progress for the rest. Requests are scanned in insertion
// order; after each integration the scan restarts, so several ready
// items land in the same frame without mutating the slice mid-
// iteration. Completion order between ready items is whatever the
// pool delivered.
func (s *Streamer) Pump() []PendingStatus {
	for {
		integrated := false
		for i, rq := range s.pending {
			if !rq.future.IsComplete() {
				continue
			}
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			s.integrate(rq)
			integrated = true
			break
		}
		if !integrated {
			break
		}
	}

	statuses := make([]PendingStatus, 0, len(s.pending))
	for _, rq := range s.pending {
		statuses = append(statuses, PendingStatus{
			Path:     rq.Path,
			Array:    rq.Array,
			Sub:      rq.Sub,
			Progress: rq.Progress(),
		})
	}
	return statuses
}

func (s *Streamer) integrate(rq *Request) {
	img, err := rq.future.Take()
	if err == nil {
		err = s.registry.Write(rq.Array, rq.Sub, img)
	}
	if err != nil {
		s.fail(rq, err)
		return
	}
	s.integrated++
	log.Printf("[asset] integrated %q into array %d layer %d face %d",
		rq.Path, rq.Array, rq.Sub.Layer, rq.Sub.Face)
}

func (s *Streamer) fail(rq *Request, err error) {
	lerr := &LoadError{Path: rq.Path, Array: rq.Array, Sub: rq.Sub, Err: err}
	s.failures = append(s.failures, lerr)
	log.Printf("[asset] %v", lerr)
}
