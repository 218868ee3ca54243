package web

import (
	"time"

	"github.com/mogaika/fray/game"
	"github.com/mogaika/fray/viewport"
)

// StatusSystem publishes a snapshot of the engine state after every
// frame so the debug endpoints always describe the latest frame.
type StatusSystem struct {
	game.Base
}

type snapshotVisitor struct {
	db     *viewport.DB
	leafs  []ViewportLeaf
	splits []ViewportSplit
}

func (sv *snapshotVisitor) AcceptLeaf(args viewport.AcceptLeafArgs) {
	hovered, hasHovered := sv.db.Hovered()
	sv.leafs = append(sv.leafs, ViewportLeaf{
		Id:         uint32(args.ID),
		Parent:     uint32(args.Parent),
		Name:       args.Info.Name,
		Rect:       args.Rect,
		ClearColor: args.Info.ClearColor,
		Focused:    args.ID == sv.db.Focused(),
		Hovered:    hasHovered && args.ID == hovered,
	})
}

func (sv *snapshotVisitor) AcceptSplit(args viewport.AcceptSplitArgs) {
	sv.splits = append(sv.splits, ViewportSplit{
		Id:        uint32(args.ID),
		Parent:    uint32(args.Parent),
		Rect:      args.Rect,
		Direction: args.Direction.String(),
		DividerPx: *args.DistanceFromOriginPx,
	})
}

// BuildSnapshot copies everything the debug view needs out of g. Must
// run on the main thread; the result is safe to share.
func BuildSnapshot(g *game.G) *Snapshot {
	sv := &snapshotVisitor{db: g.Viewports}
	g.Viewports.Visit(g.CanvasRect(), sv)

	pending := make([]AssetEntry, 0, len(g.PendingAssets))
	for _, p := range g.PendingAssets {
		pending = append(pending, AssetEntry{
			Path:     p.Path,
			Progress: p.Progress.String(),
		})
	}

	failures := make([]string, 0, len(g.Assets.Failures()))
	for _, f := range g.Assets.Failures() {
		failures = append(failures, f.Error())
	}

	workers := make([]string, g.Pool.Workers())
	for i := range workers {
		workers[i] = g.Pool.ThreadStatus(i)
	}

	s := &Snapshot{
		Time:       time.Now(),
		Canvas:     g.CanvasSize,
		Leafs:      sv.leafs,
		Splits:     sv.splits,
		Pending:    pending,
		Failures:   failures,
		Integrated: g.Assets.IntegratedCount(),
		Workers:    workers,
	}
	if g.HasFps {
		s.Fps = g.LastFps.Fps()
	}
	return s
}

func (*StatusSystem) Draw(g *game.G, d *game.Draw) {
	Publish(BuildSnapshot(g))
}
