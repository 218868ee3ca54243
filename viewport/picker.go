package viewport

import "github.com/mogaika/fray/geom"

// Picker is a visitor that finds the leaf under a pointer position.
// The position must already be in the tree's coordinate convention
// (origin bottom-left). Divider proximity is recorded separately for
// future drag-resize.
type Picker struct {
	Pos geom.Vec2u

	found      NodeID
	foundOK    bool
	onBorder   NodeID
	onBorderOK bool
}

func (p *Picker) Found() (NodeID, bool) {
	return p.found, p.foundOK
}

func (p *Picker) OnBorder() (NodeID, bool) {
	return p.onBorder, p.onBorderOK
}

func (p *Picker) AcceptLeaf(args AcceptLeafArgs) {
	if args.Rect.ContainsPoint(p.Pos) {
		p.found = args.ID
		p.foundOK = true
	}
}

func (p *Picker) AcceptSplit(args AcceptSplitArgs) {
	if !args.Rect.ContainsPoint(p.Pos) {
		return
	}
	var axis uint32
	if args.Direction == Horizontal {
		axis = p.Pos.Y
	} else {
		axis = p.Pos.X
	}
	divider := *args.DistanceFromOriginPx
	var dist uint32
	if axis > divider {
		dist = axis - divider
	} else {
		dist = divider - axis
	}
	if dist <= args.BorderPx {
		p.onBorder = args.ID
		p.onBorderOK = true
	}
}
