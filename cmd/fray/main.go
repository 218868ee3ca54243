package main

import (
	"flag"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mogaika/fray/asset"
	"github.com/mogaika/fray/config"
	"github.com/mogaika/fray/frametime"
	"github.com/mogaika/fray/game"
	"github.com/mogaika/fray/geom"
	"github.com/mogaika/fray/mt"
	"github.com/mogaika/fray/render"
	"github.com/mogaika/fray/render/glrender"
	"github.com/mogaika/fray/scene"
	"github.com/mogaika/fray/utils"
	"github.com/mogaika/fray/viewport"
	"github.com/mogaika/fray/web"
)

func init() {
	runtime.LockOSThread()
}

const (
	stockCubemapArray    render.TextureArrayID = 0
	streamedCubemapArray render.TextureArrayID = 1

	streamedCubemapSize = 1024
)

func solidPixel(r, g, b uint8) render.Image {
	return render.Image{Width: 1, Height: 1, Format: render.FormatRGB8, Pix: []byte{r, g, b}}
}

// seedStockCubemaps fills the 1x1 array with solid-color skyboxes so
// there is always something to display before any file load finishes.
func seedStockCubemaps(registry *render.Registry) error {
	black := solidPixel(0, 0, 0)
	white := solidPixel(255, 255, 255)
	red := solidPixel(255, 0, 0)
	yellow := solidPixel(255, 255, 0)
	cyan := solidPixel(0, 255, 255)
	blue := solidPixel(0, 0, 255)
	orange := solidPixel(255, 175, 45)

	// Faces are +X -X +Y -Y +Z -Z.
	layers := [][6]render.Image{
		{black, black, black, black, black, black},
		{white, white, white, white, white, white},
		{red, cyan, solidPixel(0, 255, 0), solidPixel(255, 0, 255), blue, yellow},
		{cyan, cyan, blue, white, cyan, cyan},
		{orange, orange, red, yellow, orange, orange},
		{white, white, white, white, white, white},
	}

	for layer, faces := range layers {
		for face, img := range faces {
			sub := render.SubResource{Layer: uint32(layer), Face: int32(face)}
			if err := registry.Write(stockCubemapArray, sub, img); err != nil {
				return err
			}
		}
	}
	return nil
}

func createTextureArrays(registry *render.Registry, skyboxCount uint32) error {
	if err := registry.Create(stockCubemapArray, render.TextureArrayInfo{
		Kind:         render.CubemapArray,
		Levels:       1,
		Format:       render.FormatRGB8,
		Width:        1,
		Height:       1,
		SubResources: 6,
	}); err != nil {
		return err
	}
	if err := registry.Clear(stockCubemapArray, utils.NewColorFloat(1, 0, 1)); err != nil {
		return err
	}
	if err := registry.SetFilters(stockCubemapArray, render.FilterNearest, render.FilterNearest); err != nil {
		return err
	}
	if err := seedStockCubemaps(registry); err != nil {
		return err
	}

	if skyboxCount < 1 {
		skyboxCount = 1
	}
	if err := registry.Create(streamedCubemapArray, render.TextureArrayInfo{
		Kind:         render.CubemapArray,
		Levels:       1,
		Format:       render.FormatRGB8,
		Width:        streamedCubemapSize,
		Height:       streamedCubemapSize,
		SubResources: skyboxCount,
	}); err != nil {
		return err
	}
	// Sky blue placeholder until the real faces stream in.
	if err := registry.Clear(streamedCubemapArray, utils.NewColorFloat(32.0/255, 110.0/255, 1)); err != nil {
		return err
	}
	return registry.SetFilters(streamedCubemapArray, render.FilterLinear, render.FilterLinear)
}

func queueSkyboxes(streamer *asset.Streamer, cfg config.AssetsConfig) {
	for i, sb := range cfg.Skyboxes {
		dir := filepath.Join(cfg.DataDir, sb.Dir)
		if err := streamer.QueueCubemapSet(dir, sb.Name, sb.Ext, streamedCubemapArray, uint32(i)); err != nil {
			log.Printf("[fray] Failed to queue skybox %q: %v", sb.Name, err)
		}
	}
}

func main() {
	var configPath, addr string
	flag.StringVar(&configPath, "config", "fray.yaml", "Path to config file")
	flag.StringVar(&addr, "i", "", "Debug server address override")
	flag.Parse()

	if err := config.Load(configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.Get()
	if addr != "" {
		cfg.Web.Addr = addr
		config.Set(cfg)
	}
	log.Printf("[fray] Using config:\n%s", utils.SDump(cfg))

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize glfw: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(int(cfg.Window.Width), int(cfg.Window.Height), cfg.Window.Title, nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize gl: %v", err)
	}
	log.Printf("[fray] GL version %q", gl.GoStr(gl.GetString(gl.VERSION)))

	pool := mt.NewPool(cfg.Assets.Workers)
	defer pool.Close()

	backend := glrender.NewBackend()
	registry := render.NewRegistry(backend)
	if err := createTextureArrays(registry, uint32(len(cfg.Assets.Skyboxes))); err != nil {
		log.Fatalf("Failed to create texture arrays: %v", err)
	}

	streamer := asset.NewStreamer(pool, registry)
	queueSkyboxes(streamer, cfg.Assets)

	fbWidth, fbHeight := window.GetFramebufferSize()

	g := &game.G{
		Scene:      scene.New(),
		Viewports:  viewport.NewDB(),
		Registry:   registry,
		Assets:     streamer,
		Pool:       pool,
		FrameTime:  frametime.NewManager(60),
		CanvasSize: geom.Extent2u{W: uint32(fbWidth), H: uint32(fbHeight)},
	}
	g.Viewports.SetBorder(cfg.Viewport.BorderPx,
		utils.NewColorFloat(cfg.Viewport.BorderColor[0], cfg.Viewport.BorderColor[1], cfg.Viewport.BorderColor[2]))

	// The root viewport shows the first streamed skybox; stock colors
	// stay reachable through the selector for debugging.
	if info, ok := g.Viewports.Leaf(g.Viewports.Root()); ok {
		info.Skybox = viewport.SkyboxSelector{Tab: uint32(streamedCubemapArray), Layer: 0}
	}

	systems := []game.System{
		&game.ViewportInputHandler{},
		&game.SceneLogicSystem{},
		&game.AssetPumpSystem{},
		glrender.NewSystem(backend),
		&web.StatusSystem{},
		&game.SceneCommandClearerSystem{},
	}

	if cfg.Web.Addr != "" {
		web.StartServer(cfg.Web.Addr)
	}

	queue := &eventQueue{}
	installCallbacks(window, queue)
	curs := newCursors()

	const tickDt = time.Second / 60
	var accumulator time.Duration
	fpsCounter := frametime.NewFpsCounter(time.Second)
	last := time.Now()

	for !window.ShouldClose() && !g.QuitRequested() {
		now := time.Now()
		frameDt := now.Sub(last)
		last = now

		g.T += frameDt
		g.FrameTime.Push(frameDt)
		if stats, ok := fpsCounter.Frame(frameDt); ok {
			g.PushFps(stats)
			log.Printf("[fray] %.1f fps", stats.Fps())
		}

		glfw.PollEvents()
		for _, ev := range queue.drain() {
			g.ApplyEvent(ev)
			for _, s := range systems {
				game.Dispatch(g, s, ev)
			}
		}

		accumulator += frameDt
		for accumulator >= tickDt {
			accumulator -= tickDt
			t := &game.Tick{T: g.T, DtDuration: tickDt, Dt: float32(tickDt.Seconds())}
			for _, s := range systems {
				s.Tick(g, t)
			}
		}

		d := &game.Draw{
			T:            g.T,
			DtDuration:   frameDt,
			Dt:           float32(frameDt.Seconds()),
			SmoothDt:     float32(g.FrameTime.SmoothDt().Seconds()),
			TickProgress: accumulator.Seconds() / tickDt.Seconds(),
		}
		for _, s := range systems {
			s.Draw(g, d)
		}

		curs.apply(window, g.Cursor)
		window.SwapBuffers()
	}
}
