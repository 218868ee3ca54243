package viewport

import (
	"fmt"

	"github.com/mogaika/fray/geom"
)

// Visitor walks the tree without knowing its representation. Rendering
// and hit-testing are both implemented on top of it.
type Visitor interface {
	AcceptLeaf(args AcceptLeafArgs)
	AcceptSplit(args AcceptSplitArgs)
}

type AcceptLeafArgs struct {
	ID       NodeID
	Rect     geom.Rect
	Info     *LeafInfo
	Parent   NodeID // NodeNone for the root
	BorderPx uint32 // 0 for the root
}

type AcceptSplitArgs struct {
	ID        NodeID
	Rect      geom.Rect
	Direction SplitDirection
	// Divider position in absolute pixels from the window's left or
	// bottom edge. Mutable for future drag-resize; the traversal does
	// not yet honor writes.
	DistanceFromOriginPx *uint32
	Parent               NodeID
	BorderPx             uint32
}

// Visit maps the root onto rect and walks the tree pre-order, first
// child (origin side) before second. Split rectangles are currently
// always divided 50/50 regardless of the stored Split value.
func (db *DB) Visit(rect geom.Rect, v Visitor) {
	db.visitNode(db.root, rect, v, db.borderPx)
}

func (db *DB) visitNode(id NodeID, rect geom.Rect, v Visitor, borderPx uint32) {
	n := db.mustNode(id)
	switch n.kind {
	case leafKind:
		leafBorder := borderPx
		if n.parent == NodeNone {
			leafBorder = 0
		}
		v.AcceptLeaf(AcceptLeafArgs{
			ID:       id,
			Rect:     rect,
			Info:     &n.info,
			Parent:   n.parent,
			BorderPx: leafBorder,
		})
	case splitKind:
		var r0, r1 geom.Rect
		var distance uint32
		switch n.split.Direction {
		case Horizontal:
			r0, r1, distance = rect.SplitHeight()
		case Vertical:
			r0, r1, distance = rect.SplitWidth()
		}
		v.AcceptSplit(AcceptSplitArgs{
			ID:                   id,
			Rect:                 rect,
			Direction:            n.split.Direction,
			DistanceFromOriginPx: &distance,
			Parent:               n.parent,
			BorderPx:             borderPx,
		})
		db.visitNode(n.c0, r0, v, borderPx)
		db.visitNode(n.c1, r1, v, borderPx)
	default:
		panic(fmt.Sprintf("viewport: node %d has invalid kind %d", id, n.kind))
	}
}
