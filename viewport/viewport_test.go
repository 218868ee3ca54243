package viewport

import (
	"math/rand"
	"testing"

	"github.com/mogaika/fray/geom"
)

type collectVisitor struct {
	leaves map[NodeID]geom.Rect
	splits map[NodeID]geom.Rect
}

func collect(db *DB, rect geom.Rect) *collectVisitor {
	c := &collectVisitor{
		leaves: make(map[NodeID]geom.Rect),
		splits: make(map[NodeID]geom.Rect),
	}
	db.Visit(rect, c)
	return c
}

func (c *collectVisitor) AcceptLeaf(args AcceptLeafArgs) {
	if _, twice := c.leaves[args.ID]; twice {
		panic("leaf visited twice")
	}
	c.leaves[args.ID] = args.Rect
}

func (c *collectVisitor) AcceptSplit(args AcceptSplitArgs) {
	if _, twice := c.splits[args.ID]; twice {
		panic("split visited twice")
	}
	c.splits[args.ID] = args.Rect
}

func checkInvariants(t *testing.T, db *DB) {
	t.Helper()

	if !db.IsLeaf(db.Focused()) {
		t.Errorf("focused node %d is not a leaf", db.Focused())
	}
	if _, hasParent := db.Parent(db.Root()); hasParent {
		t.Errorf("root has a parent")
	}

	c := collect(db, geom.NewRect(0, 0, 1024, 1024))
	if got := len(c.leaves) + len(c.splits); got != db.NodeCount() {
		t.Errorf("traversal visited %d nodes, db owns %d", got, db.NodeCount())
	}
	for id := range c.splits {
		c0, c1, ok := db.Children(id)
		if !ok {
			t.Fatalf("split %d reports no children", id)
		}
		for _, child := range []NodeID{c0, c1} {
			parent, ok := db.Parent(child)
			if !ok || parent != id {
				t.Errorf("child %d of %d has parent %d (ok=%v)", child, id, parent, ok)
			}
		}
	}
	for id := range c.leaves {
		if parent, ok := db.Parent(id); ok {
			pc0, pc1, split := db.Children(parent)
			if !split || (pc0 != id && pc1 != id) {
				t.Errorf("leaf %d not recorded as child of parent %d", id, parent)
			}
		}
	}
}

// Scenario straight out of the engine's keybindings: V, H, M, M.
func TestSplitMergeScenario(t *testing.T) {
	db := NewDB()
	if db.Root() != 0 || db.Focused() != 0 || db.NodeCount() != 1 {
		t.Fatalf("fresh tree: root=%d focused=%d count=%d", db.Root(), db.Focused(), db.NodeCount())
	}

	db.SplitV()
	c0, c1, ok := db.Children(0)
	if !ok || c0 != 1 || c1 != 2 {
		t.Fatalf("after SplitV: children of root = (%d,%d) ok=%v", c0, c1, ok)
	}
	if db.Focused() != 1 {
		t.Fatalf("after SplitV: focused=%d, expected 1", db.Focused())
	}
	checkInvariants(t, db)

	db.SplitH()
	c0, c1, ok = db.Children(1)
	if !ok || c0 != 3 || c1 != 4 {
		t.Fatalf("after SplitH: children of 1 = (%d,%d) ok=%v", c0, c1, ok)
	}
	if db.Focused() != 3 {
		t.Fatalf("after SplitH: focused=%d, expected 3", db.Focused())
	}
	checkInvariants(t, db)

	db.Merge()
	if !db.IsLeaf(1) || db.Focused() != 1 {
		t.Fatalf("after first Merge: IsLeaf(1)=%v focused=%d", db.IsLeaf(1), db.Focused())
	}
	if db.exists(3) || db.exists(4) {
		t.Fatalf("children 3,4 still exist after merge")
	}
	checkInvariants(t, db)

	db.Merge()
	if !db.IsLeaf(0) || db.Focused() != 0 || db.NodeCount() != 1 {
		t.Fatalf("after second Merge: IsLeaf(0)=%v focused=%d count=%d", db.IsLeaf(0), db.Focused(), db.NodeCount())
	}
	checkInvariants(t, db)
}

func TestMergeOnRootIsNoop(t *testing.T) {
	db := NewDB()
	db.Merge()
	if db.NodeCount() != 1 || db.Focused() != 0 {
		t.Errorf("merge on root changed the tree: count=%d focused=%d", db.NodeCount(), db.Focused())
	}
}

func TestSplitMergeInverse(t *testing.T) {
	for _, dir := range []SplitDirection{Horizontal, Vertical} {
		db := NewDB()
		before, _ := db.Leaf(db.Focused())
		beforeInfo := *before
		beforeCount := db.NodeCount()

		db.Split(dir)
		db.Merge()

		if db.NodeCount() != beforeCount {
			t.Errorf("%v: node count %d, expected %d", dir, db.NodeCount(), beforeCount)
		}
		if db.Focused() != 0 {
			t.Errorf("%v: focused=%d, expected 0", dir, db.Focused())
		}
		after, ok := db.Leaf(0)
		if !ok {
			t.Fatalf("%v: root is not a leaf after merge", dir)
		}
		if *after != beforeInfo {
			t.Errorf("%v: leaf info changed: %+v != %+v", dir, *after, beforeInfo)
		}
	}
}

// Merging against a sibling that is itself a split must release the
// sibling's whole subtree, not just the split node.
func TestMergeCollapsesSiblingSubtree(t *testing.T) {
	db := NewDB()
	db.SplitV()  // root -> 1 + 2, focus 1
	db.SplitH()  // 1 -> 3 + 4, focus 3
	db.Focus(2)  // sibling of 2 is the split at 1
	db.Merge()

	if db.NodeCount() != 1 {
		t.Fatalf("after merge NodeCount=%d, want 1", db.NodeCount())
	}
	if !db.IsLeaf(0) || db.Focused() != 0 {
		t.Fatalf("after merge: IsLeaf(0)=%v focused=%d", db.IsLeaf(0), db.Focused())
	}
	for _, id := range []NodeID{1, 2, 3, 4} {
		if db.exists(id) {
			t.Errorf("node %d survived the merge", id)
		}
	}
	checkInvariants(t, db)
}

// A pointer parked over a child that merge deletes must not keep
// reporting that child as hovered.
func TestMergeClearsDanglingHover(t *testing.T) {
	db := NewDB()
	db.SplitV()
	db.Hover(2)
	db.Merge() // deletes 1 and 2

	if id, ok := db.Hovered(); ok {
		t.Fatalf("hover survived merge, reports node %d", id)
	}

	// Even the focused child goes away in a merge; a hover on it must
	// be cleared too.
	db.SplitV() // root -> 3 + 4, focus 3
	db.Hover(3)
	db.Merge()
	if _, ok := db.Hovered(); ok {
		t.Errorf("hover still points at a deleted child")
	}
}

func TestIDsNotReused(t *testing.T) {
	db := NewDB()
	db.SplitV() // allocates 1, 2
	db.Merge()  // deletes them
	db.SplitH() // must allocate fresh ids
	c0, c1, _ := db.Children(0)
	if c0 != 3 || c1 != 4 {
		t.Errorf("ids reused after merge: got (%d,%d), expected (3,4)", c0, c1)
	}
}

func TestRandomOpsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	db := NewDB()
	rect := geom.NewRect(0, 0, 1280, 720)

	for i := 0; i < 300; i++ {
		switch rng.Intn(4) {
		case 0:
			db.SplitH()
		case 1:
			db.SplitV()
		case 2:
			db.Merge()
		case 3:
			c := collect(db, rect)
			// focus a random leaf
			n := rng.Intn(len(c.leaves))
			for id := range c.leaves {
				if n == 0 {
					db.Focus(id)
					break
				}
				n--
			}
		}
		checkInvariants(t, db)
	}
}

func TestRectanglePartition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	db := NewDB()
	for i := 0; i < 12; i++ {
		if rng.Intn(2) == 0 {
			db.SplitH()
		} else {
			db.SplitV()
		}
		if rng.Intn(3) == 0 {
			c := collect(db, geom.NewRect(0, 0, 64, 64))
			for id := range c.leaves {
				db.Focus(id)
				break
			}
		}
	}

	rect := geom.NewRect(3, 5, 97, 61) // deliberately odd extents
	c := collect(db, rect)

	var total uint64
	rects := make([]geom.Rect, 0, len(c.leaves))
	for _, r := range c.leaves {
		total += r.Area()
		rects = append(rects, r)
	}
	if total != rect.Area() {
		t.Errorf("leaf areas sum to %d, expected %d", total, rect.Area())
	}

	// Exhaustive point check: every pixel belongs to exactly one leaf.
	for y := rect.Y; y < rect.Top(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			hits := 0
			for _, r := range rects {
				if r.ContainsPoint(geom.Vec2u{X: x, Y: y}) {
					hits++
				}
			}
			if hits != 1 {
				t.Fatalf("point (%d,%d) contained by %d leaves", x, y, hits)
			}
		}
	}
}

func TestFocusSplitPanics(t *testing.T) {
	db := NewDB()
	db.SplitV()
	defer func() {
		if recover() == nil {
			t.Errorf("focusing a split node did not panic")
		}
	}()
	db.Focus(0) // 0 is now a split
}

func TestLeafNamesUnique(t *testing.T) {
	db := NewDB()
	for i := 0; i < 5; i++ {
		db.SplitV()
	}
	seen := make(map[string]NodeID)
	c := collect(db, geom.NewRect(0, 0, 100, 100))
	for id := range c.leaves {
		info, _ := db.Leaf(id)
		if other, dup := seen[info.Name]; dup {
			t.Errorf("leaves %d and %d share name %q", id, other, info.Name)
		}
		seen[info.Name] = id
	}
}
