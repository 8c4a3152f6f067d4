package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/steering/common"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/ecs/entity"
	"github.com/milk9111/steering/ecs/render"
	"github.com/milk9111/steering/ecs/system"
	"github.com/milk9111/steering/prefabs"
	"github.com/milk9111/steering/scenarios"
	"github.com/milk9111/steering/waypoint"
	"golang.design/x/clipboard"
)

// fpsLogInterval is how many ticks pass between fps log lines in debug mode.
const fpsLogInterval = 100

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	renderer  *render.RenderSystem
	sim       *component.Simulation
	scenario  *scenarios.Scenario

	name    string
	seed    int64
	debug   bool
	pending bool
	next    string

	watcher   *prefabs.Watcher
	clipboard bool
	pauseUI   *ebitenui.UI
	// pauseRetunes is the sim retune count pauseUI was built from.
	pauseRetunes uint64
}

func NewGame(name string, seed int64, debug, watch bool) (*Game, error) {
	g := &Game{
		name:     name,
		seed:     seed,
		debug:    debug,
		renderer: render.NewRenderSystem(),
	}
	g.renderer.Debug = debug

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable, path export disabled: %v", err)
	} else {
		g.clipboard = true
	}

	if watch {
		w, err := prefabs.NewWatcher(scenarios.Dir, prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.load(name); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// load spawns a fresh world for the named scenario.
func (g *Game) load(name string) error {
	sc, err := scenarios.Load(name)
	if err != nil {
		return err
	}

	seed := sc.ResolveSeed(g.seed)

	world := ecs.NewWorld()
	sim, err := entity.SpawnScenario(world, sc, seed, common.NewGameTimer())
	if err != nil {
		return err
	}
	scheduler, err := system.NewScenarioScheduler(sc, &ebitenPointer{game: g}, g.requestRespawn)
	if err != nil {
		return err
	}

	g.world = world
	g.scheduler = scheduler
	g.sim = sim
	g.scenario = sc
	g.name = sc.Name
	g.rebuildPauseUI()
	log.Printf("scenario %s: seed %d, %d agents", sc.Name, seed, sc.AgentCount())
	return nil
}

func (g *Game) rebuildPauseUI() {
	g.pauseUI = NewPauseUI(g)
	g.pauseRetunes = g.sim.Retunes
}

func (g *Game) requestRespawn() {
	g.requestScenario(g.name)
}

// requestScenario switches scenarios at the end of the current frame.
func (g *Game) requestScenario(name string) {
	g.pending = true
	g.next = name
}

func (g *Game) title() string {
	if g.scenario != nil && g.scenario.Title != "" {
		return "steering: " + g.scenario.Title
	}
	return "steering: " + g.name
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.sim.Paused = !g.sim.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := system.RequestReload(g.world, "", true); err != nil {
			log.Printf("reload: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.renderer.Debug = !g.renderer.Debug
	}
	g.pollWatcher()

	g.scheduler.Update(g.world)

	if g.sim.Paused {
		if g.sim.Retunes != g.pauseRetunes {
			g.rebuildPauseUI()
		}
		g.pauseUI.Update()
	}
	g.exportPath()

	if g.debug && !g.sim.Paused && g.sim.Tick > 0 && g.sim.Tick%fpsLogInterval == 0 {
		log.Printf("tick %d: %.1f fps, %.1f tps", g.sim.Tick, ebiten.ActualFPS(), ebiten.ActualTPS())
	}

	if g.pending {
		g.pending = false
		return g.switchTo(g.next)
	}
	return nil
}

// switchTo respawns the world for name. A broken scenario file keeps the
// current world running.
func (g *Game) switchTo(name string) error {
	if err := g.load(name); err != nil {
		log.Printf("scenario %s: %v", name, err)
		return nil
	}
	ebiten.SetWindowTitle(g.title())
	return nil
}

// pollWatcher turns file changes into reload requests without blocking the
// frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("reload: %s changed", path)
			if err := system.RequestReload(g.world, path, false); err != nil {
				log.Printf("reload: %v", err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

// exportPath copies the first walker's path as YAML when the export key was
// pressed this frame.
func (g *Game) exportPath() {
	e, ok := g.world.First(component.PointerComponent.Kind())
	if !ok {
		return
	}
	p, ok := ecs.Get(g.world, e, component.PointerComponent.Kind())
	if !ok || !p.Export {
		return
	}

	we, ok := g.world.First(component.WalkerComponent.Kind())
	if !ok {
		return
	}
	walker, ok := ecs.Get(g.world, we, component.WalkerComponent.Kind())
	if !ok || walker.Path == nil {
		return
	}
	data, err := waypoint.EncodePath(walker.Path)
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	if !g.clipboard {
		fmt.Print(string(data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("export: copied %d waypoints", walker.Path.Len())
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.sim.Paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sim.Resolution.Width, g.sim.Resolution.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// ebitenPointer reads the cursor in layout coordinates. The pointer is only
// active while the cursor is inside the play area of a focused window.
type ebitenPointer struct {
	game *Game
}

func (p *ebitenPointer) Poll() system.PointerState {
	x, y := ebiten.CursorPosition()
	size := p.game.sim.Resolution
	inside := x >= 0 && y >= 0 && x < size.Width && y < size.Height
	return system.PointerState{
		X:           float64(x),
		Y:           float64(y),
		Active:      inside && ebiten.IsFocused(),
		AddWaypoint: inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Export:      inpututil.IsKeyJustPressed(ebiten.KeyC),
	}
}
