package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/steering/common"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/ecs/entity"
	"github.com/milk9111/steering/ecs/system"
	"github.com/milk9111/steering/scenarios"
)

const frameInterval = 16 * time.Millisecond

// Heading arrows, clockwise from up.
var arrows = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

var (
	waypointStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 255, 0))
	labelStyle    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 153, 0))
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

// Term runs a scenario in a terminal. Each cell covers a patch of the
// scenario's play area.
type Term struct {
	screen    tcell.Screen
	world     *ecs.World
	scheduler *ecs.Scheduler
	sim       *component.Simulation
	pointer   *termPointer
	seed      int64
}

func NewTerm(name string, seed int64) (*Term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	t, err := newTermOnScreen(screen, name, seed)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

func newTermOnScreen(screen tcell.Screen, name string, seed int64) (*Term, error) {
	sc, err := scenarios.Load(name)
	if err != nil {
		return nil, err
	}
	seed = sc.ResolveSeed(seed)

	world := ecs.NewWorld()
	sim, err := entity.SpawnScenario(world, sc, seed, common.NewGameTimer())
	if err != nil {
		return nil, err
	}
	pointer := &termPointer{}
	scheduler, err := system.NewScenarioScheduler(sc, pointer, nil)
	if err != nil {
		return nil, err
	}
	return &Term{
		screen:    screen,
		world:     world,
		scheduler: scheduler,
		sim:       sim,
		pointer:   pointer,
		seed:      seed,
	}, nil
}

func (t *Term) Close() {
	t.screen.Fini()
}

func (t *Term) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go t.pollEvents(events, done)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.scheduler.Update(t.world)
			t.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed. events is closed only when the screen stops.
func (t *Term) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the user quits.
func (t *Term) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			t.sim.Paused = !t.sim.Paused
		}
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := t.toWorld(cx, cy)
		t.pointer.move(x, y, ev.Buttons()&tcell.Button2 != 0)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// cellSize returns the play-area size of one cell. The bottom row is the
// status line.
func (t *Term) cellSize() (float64, float64) {
	w, h := t.screen.Size()
	h--
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return float64(t.sim.Resolution.Width) / float64(w), float64(t.sim.Resolution.Height) / float64(h)
}

func (t *Term) toWorld(cx, cy int) (float64, float64) {
	sx, sy := t.cellSize()
	return (float64(cx) + 0.5) * sx, (float64(cy) + 0.5) * sy
}

func (t *Term) toCell(x, y float64) (int, int) {
	sx, sy := t.cellSize()
	return int(math.Floor(x / sx)), int(math.Floor(y / sy))
}

func (t *Term) draw() {
	t.screen.Clear()
	t.drawWaypoints()
	t.drawSprites()
	t.drawStatus()
	t.screen.Show()
}

func (t *Term) drawWaypoints() {
	ecs.ForEach(t.world, component.WalkerComponent.Kind(), func(_ ecs.Entity, walker *component.Walker) {
		if walker.Path == nil {
			return
		}
		for i, wp := range walker.Path.Waypoints() {
			cx, cy := t.toCell(wp.Position.X, wp.Position.Y)
			t.set(cx, cy, 'o', waypointStyle)
			if walker.ShowLabels {
				t.text(cx+1, cy, walker.Path.Label(i), labelStyle)
			}
		}
	})
}

func (t *Term) drawSprites() {
	ecs.ForEach2(t.world, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, s *component.Sprite, tr *component.Transform) {
		if s.Hidden {
			return
		}
		cx, cy := t.toCell(tr.X, tr.Y)
		t.set(cx, cy, glyph(s.Key, tr.Rotation), spriteStyle(s))
	})
}

func (t *Term) drawStatus() {
	w, h := t.screen.Size()
	var st component.Stats
	if e, ok := t.world.First(component.StatsComponent.Kind()); ok {
		if s, ok := ecs.Get(t.world, e, component.StatsComponent.Kind()); ok {
			st = *s
		}
	}
	line := fmt.Sprintf(" %s  tick %d  agents %d  mean %.2f  max %.2f  arrivals %d ",
		t.sim.Name, t.sim.Tick, st.Agents, st.MeanSpeed, st.MaxSpeed, st.Arrivals)
	if t.sim.Paused {
		line += " PAUSED "
	}
	status := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		t.screen.SetContent(x, h-1, r, nil, statusStyle)
	}
}

// set draws r inside the play area, above the status line.
func (t *Term) set(cx, cy int, r rune, style tcell.Style) {
	w, h := t.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h-1 {
		return
	}
	t.screen.SetContent(cx, cy, r, nil, style)
}

func (t *Term) text(cx, cy int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.set(cx+i, cy, r, style)
	}
}

func glyph(key string, rotation float64) rune {
	switch key {
	case "koi":
		i := int(math.Round(rotation/(math.Pi/4))) % 8
		if i < 0 {
			i += 8
		}
		return arrows[i]
	case "disc":
		return '●'
	case "ring":
		return '∘'
	case "crosshair":
		return '+'
	}
	return '?'
}

func spriteStyle(s *component.Sprite) tcell.Style {
	c := s.Tint
	if c.A == 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// termPointer turns mouse events into per-tick pointer states. A secondary
// button press adds one waypoint no matter how long it is held.
type termPointer struct {
	state system.PointerState
	held  bool
}

func (p *termPointer) move(x, y float64, secondary bool) {
	p.state.X = x
	p.state.Y = y
	p.state.Active = true
	if secondary && !p.held {
		p.state.AddWaypoint = true
	}
	p.held = secondary
}

func (p *termPointer) Poll() system.PointerState {
	st := p.state
	p.state.AddWaypoint = false
	return st
}
