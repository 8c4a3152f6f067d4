package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var (
	WaypointColor      = color.RGBA{G: 255, A: 255}
	WaypointLabelColor = color.RGBA{G: 51, A: 255}
)

// Label placement relative to the waypoint center.
const (
	labelOffsetX = -5
	labelOffsetY = -11
)

type RenderSystem struct {
	face  ebtext.Face
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if simEnt, ok := w.First(component.SimulationComponent.Kind()); ok {
		if sim, ok := ecs.Get(w, simEnt, component.SimulationComponent.Kind()); ok {
			screen.Fill(sim.Background)
		}
	}

	r.drawWaypoints(w, screen)
	r.drawSprites(w, screen)

	if r.Debug {
		r.drawOverlay(w, screen)
	}
}

func (r *RenderSystem) drawWaypoints(w *ecs.World, screen *ebiten.Image) {
	disc := GetImage("disc")
	ecs.ForEach(w, component.WalkerComponent.Kind(), func(_ ecs.Entity, walker *component.Walker) {
		if walker.Path == nil {
			return
		}
		for i, wp := range walker.Path.Waypoints() {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(disc.Bounds().Dx())/2, -float64(disc.Bounds().Dy())/2)
			op.GeoM.Translate(wp.Position.X, wp.Position.Y)
			op.ColorScale.ScaleWithColor(WaypointColor)
			screen.DrawImage(disc, op)

			if !walker.ShowLabels {
				continue
			}
			textOp := &ebtext.DrawOptions{}
			textOp.GeoM.Translate(wp.Position.X+labelOffsetX, wp.Position.Y+labelOffsetY)
			textOp.ColorScale.ScaleWithColor(WaypointLabelColor)
			ebtext.Draw(screen, walker.Path.Label(i), r.face, textOp)
		}
	})
}

func (r *RenderSystem) drawSprites(w *ecs.World, screen *ebiten.Image) {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Hidden {
			continue
		}
		img := GetImage(s.Key)
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		ox, oy := s.OriginX, s.OriginY
		if s.Centered {
			ox = float64(img.Bounds().Dx()) / 2
			oy = float64(img.Bounds().Dy()) / 2
		}
		op.GeoM.Translate(-ox, -oy)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X, t.Y)
		if s.Tint.A > 0 {
			op.ColorScale.ScaleWithColor(s.Tint)
		}
		op.Filter = ebiten.FilterLinear

		screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) drawOverlay(w *ecs.World, screen *ebiten.Image) {
	statsEnt, ok := w.First(component.StatsComponent.Kind())
	if !ok {
		return
	}
	stats, ok := ecs.Get(w, statsEnt, component.StatsComponent.Kind())
	if !ok {
		return
	}
	msg := fmt.Sprintf("TPS %0.1f  FPS %0.1f\nagents %d  mean speed %.2f  max %.2f\narrivals %d  finished %d  violations %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		stats.Agents, stats.MeanSpeed, stats.MaxSpeed,
		stats.Arrivals, stats.FinishedPaths, stats.SpeedViolations)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}
