// Package web exposes a read-only debug view of the engine over http.
// The render thread publishes an immutable Snapshot once per frame;
// handlers and websocket pushes only ever see published copies, so the
// engine state itself is never touched off the main thread.
package web

import (
	"sync"
	"time"

	"github.com/mogaika/fray/geom"
)

type ViewportLeaf struct {
	Id         uint32     `json:"id"`
	Parent     uint32     `json:"parent"`
	Name       string     `json:"name"`
	Rect       geom.Rect  `json:"rect"`
	ClearColor [4]float32 `json:"clearColor"`
	Focused    bool       `json:"focused"`
	Hovered    bool       `json:"hovered"`
}

type ViewportSplit struct {
	Id        uint32    `json:"id"`
	Parent    uint32    `json:"parent"`
	Rect      geom.Rect `json:"rect"`
	Direction string    `json:"direction"`
	DividerPx uint32    `json:"dividerPx"`
}

type AssetEntry struct {
	Path     string `json:"path"`
	Progress string `json:"progress"`
}

type Snapshot struct {
	Time       time.Time       `json:"time"`
	Fps        float64         `json:"fps"`
	Canvas     geom.Extent2u   `json:"canvas"`
	Leafs      []ViewportLeaf  `json:"leafs"`
	Splits     []ViewportSplit `json:"splits"`
	Pending    []AssetEntry    `json:"pending"`
	Failures   []string        `json:"failures"`
	Integrated int             `json:"integrated"`
	Workers    []string        `json:"workers"`
}

var (
	snapshotLock sync.Mutex
	lastSnapshot *Snapshot
)

// Publish installs s as the current snapshot and pushes it to all
// websocket subscribers. The caller must not modify s afterwards.
func Publish(s *Snapshot) {
	snapshotLock.Lock()
	lastSnapshot = s
	snapshotLock.Unlock()
	broadcastSnapshot(s)
}

func CurrentSnapshot() *Snapshot {
	snapshotLock.Lock()
	defer snapshotLock.Unlock()
	return lastSnapshot
}
