// Package viewport maintains a binary spatial partition of the window:
// every leaf is a renderable region, every split divides its rectangle
// between exactly two children. Nodes live in an ID-indexed map, so
// there are no pointer cycles between parents and children.
//
// The tree is owned by the render/update thread and is not safe for
// concurrent use.
package viewport

import (
	"fmt"
	"log"

	"github.com/mogaika/fray/utils"
)

// NodeID is a stable handle to a tree node. IDs are allocated
// monotonically and never reused while referenced.
type NodeID uint32

// NodeNone marks the absence of a node (the root's parent).
const NodeNone = ^NodeID(0)

type SplitDirection int

const (
	Horizontal SplitDirection = iota
	Vertical
)

func (d SplitDirection) String() string {
	if d == Horizontal {
		return "Horizontal"
	}
	return "Vertical"
}

type SplitOrigin int

const (
	OriginLeftOrBottom SplitOrigin = iota
	OriginMiddle
	OriginRightOrTop
)

type SplitUnit int

const (
	UnitRatio SplitUnit = iota
	UnitPx
)

// Split describes how a split node divides its rectangle. Origin, Unit
// and Value are stored for future proportional splitting but the
// traversal currently always divides 50/50 (see Visit).
type Split struct {
	Origin    SplitOrigin
	Unit      SplitUnit
	Value     float32
	Direction SplitDirection
}

// SkyboxSelector picks one cubemap out of a cubemap array.
type SkyboxSelector struct {
	Tab   uint32 // which texture array
	Layer uint32 // which cubemap within the array
}

// LeafInfo describes what a leaf viewport displays.
type LeafInfo struct {
	Name       string
	ClearColor utils.ColorFloat
	Skybox     SkyboxSelector
}

type nodeKind int

const (
	leafKind nodeKind = iota
	splitKind
)

type node struct {
	parent NodeID // NodeNone for the root
	kind   nodeKind

	// leafKind
	info LeafInfo

	// splitKind
	split  Split
	c0, c1 NodeID
}

// DB owns the viewport tree. The root is fixed at creation; focused
// always references a leaf.
type DB struct {
	borderColor utils.ColorFloat
	borderPx    uint32
	highestID   NodeID
	root        NodeID
	focused     NodeID
	hovered     NodeID // NodeNone when the pointer is outside every leaf
	names       utils.RandomNameGenerator
	nodes       map[NodeID]*node
}

func NewDB() *DB {
	db := &DB{
		borderPx:    1,
		borderColor: utils.GreyColorFloat(0.96),
		hovered:     NodeNone,
		nodes:       make(map[NodeID]*node),
	}
	root := NodeID(0)
	db.nodes[root] = &node{
		parent: NodeNone,
		kind:   leafKind,
		info: LeafInfo{
			Name:       db.names.RandomName(),
			ClearColor: utils.NewColorFloat(0.1, 0.2, 1.0),
		},
	}
	db.root = root
	db.focused = root
	db.highestID = root
	return db
}

func (db *DB) Root() NodeID { return db.root }

func (db *DB) Focused() NodeID { return db.focused }

func (db *DB) BorderPx() uint32 { return db.borderPx }

func (db *DB) BorderColor() utils.ColorFloat { return db.borderColor }

func (db *DB) SetBorder(px uint32, color utils.ColorFloat) {
	db.borderPx = px
	db.borderColor = color
}

func (db *DB) Hovered() (NodeID, bool) {
	return db.hovered, db.hovered != NodeNone
}

func (db *DB) NodeCount() int { return len(db.nodes) }

func (db *DB) exists(id NodeID) bool {
	_, ok := db.nodes[id]
	return ok
}

func (db *DB) IsLeaf(id NodeID) bool {
	n, ok := db.nodes[id]
	return ok && n.kind == leafKind
}

// Parent reports the node's parent; ok is false for the root.
func (db *DB) Parent(id NodeID) (NodeID, bool) {
	n := db.mustNode(id)
	return n.parent, n.parent != NodeNone
}

// Children reports a split node's children; ok is false for leaves.
func (db *DB) Children(id NodeID) (c0, c1 NodeID, ok bool) {
	n := db.mustNode(id)
	if n.kind != splitKind {
		return NodeNone, NodeNone, false
	}
	return n.c0, n.c1, true
}

// Leaf returns the mutable display info of a leaf node.
func (db *DB) Leaf(id NodeID) (*LeafInfo, bool) {
	n, ok := db.nodes[id]
	if !ok || n.kind != leafKind {
		return nil, false
	}
	return &n.info, true
}

func (db *DB) mustNode(id NodeID) *node {
	n, ok := db.nodes[id]
	if !ok {
		panic(fmt.Sprintf("viewport: unknown node id %d", id))
	}
	return n
}

// Hover marks the leaf currently under the pointer. Passing a split is
// a protocol violation by the caller.
func (db *DB) Hover(id NodeID) {
	if !db.IsLeaf(id) {
		panic(fmt.Sprintf("viewport: cannot hover non-leaf node %d", id))
	}
	db.hovered = id
}

func (db *DB) ClearHover() {
	db.hovered = NodeNone
}

// Focus directs subsequent split/merge commands at the given leaf.
func (db *DB) Focus(id NodeID) {
	if !db.IsLeaf(id) {
		panic(fmt.Sprintf("viewport: cannot focus non-leaf node %d", id))
	}
	log.Printf("[viewport] now focusing %d", id)
	db.focused = id
}

func (db *DB) SplitH() { db.Split(Horizontal) }
func (db *DB) SplitV() { db.Split(Vertical) }

// Split converts the focused leaf into a split node with two fresh leaf
// children. Both children start with the parent's display info; the
// second one receives a new name and a random clear color so the new
// region is visually distinct. Focus moves to the first child.
func (db *DB) Split(direction SplitDirection) {
	id := db.focused
	n := db.mustNode(id)
	if n.kind != leafKind {
		panic(fmt.Sprintf("viewport: focused node %d is not a leaf", id))
	}

	c0ID := db.highestID + 1
	c1ID := db.highestID + 2
	db.highestID += 2

	info := n.info
	n.kind = splitKind
	n.split = Split{
		Direction: direction,
		Origin:    OriginMiddle,
		Unit:      UnitRatio,
		Value:     0,
	}
	n.c0 = c0ID
	n.c1 = c1ID
	n.info = LeafInfo{}

	c1Info := info
	c1Info.Name = db.names.RandomName()
	c1Info.ClearColor = utils.RandomOpaqueColor()

	db.nodes[c0ID] = &node{parent: id, kind: leafKind, info: info}
	db.nodes[c1ID] = &node{parent: id, kind: leafKind, info: c1Info}

	log.Printf("[viewport] split %d (%v) into %d + %d", id, direction, c0ID, c1ID)
	db.Focus(c0ID)
}

// Merge collapses the focused leaf's parent split back into a leaf
// carrying the focused leaf's info, deleting both children. A merge on
// the root leaf is a no-op.
func (db *DB) Merge() {
	focusID := db.focused
	focus := db.mustNode(focusID)
	if focus.kind != leafKind {
		panic(fmt.Sprintf("viewport: focused node %d is not a leaf", focusID))
	}
	mergeID := focus.parent
	if mergeID == NodeNone {
		return
	}
	info := focus.info

	merge := db.mustNode(mergeID)
	if merge.kind != splitKind {
		panic(fmt.Sprintf("viewport: parent node %d of leaf %d is not a split", mergeID, focusID))
	}
	c0, c1 := merge.c0, merge.c1
	if c0 != focusID && c1 != focusID {
		panic(fmt.Sprintf("viewport: node %d not recorded as child of its parent %d", focusID, mergeID))
	}

	merge.kind = leafKind
	merge.info = info
	merge.split = Split{}
	merge.c0, merge.c1 = 0, 0

	// The sibling may be a whole subtree of further splits.
	db.deleteSubtree(c0)
	db.deleteSubtree(c1)
	if !db.exists(db.hovered) {
		db.hovered = NodeNone
	}

	log.Printf("[viewport] merged %d + %d back into %d", c0, c1, mergeID)
	db.Focus(mergeID)
}

func (db *DB) deleteSubtree(id NodeID) {
	n := db.mustNode(id)
	if n.kind == splitKind {
		db.deleteSubtree(n.c0)
		db.deleteSubtree(n.c1)
	}
	delete(db.nodes, id)
}
