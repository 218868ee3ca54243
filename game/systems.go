package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AssetPumpSystem integrates finished asset loads once per frame.
// It must be ordered before any renderer so that a frame never reads
// a texture array mid-update.
type AssetPumpSystem struct {
	Base
}

func (s *AssetPumpSystem) Draw(g *G, d *Draw) {
	g.PendingAssets = g.Assets.Pump()
}

// SceneLogicSystem spins the demo mesh instances.
type SceneLogicSystem struct {
	Base
}

func (s *SceneLogicSystem) Draw(g *G, d *Draw) {
	rot := mgl32.QuatRotate(mgl32.DegToRad(90)*d.Dt, mgl32.Vec3{1, 0, 0})
	for _, inst := range g.Scene.MeshInstances {
		inst.Xform.Orientation = rot.Mul(inst.Xform.Orientation).Normalize()
	}
}

// SceneCommandClearerSystem empties the scene's draw command queue.
// Order it after every renderer.
type SceneCommandClearerSystem struct {
	Base
}

func (s *SceneCommandClearerSystem) Draw(g *G, d *Draw) {
	g.Scene.ClearDrawCommands()
}
