package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/steering/ecs"
	"github.com/milk9111/steering/ecs/component"
	"github.com/milk9111/steering/scenarios"
	"github.com/milk9111/steering/steering"
	"golang.org/x/image/font/basicfont"
)

// NewPauseUI builds the centered pause panel: the scenario tuning as text
// and buttons to resume, restart, switch scenario and toggle waypoint
// labels.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	text := func(s string) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text(s, &face, white),
			widget.TextOpts.WidgetOpts(center),
		)
	}
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center, widget.WidgetOpts.MinSize(160, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	size := g.sim.Resolution
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(size.Width/2, size.Height/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(text("Paused: " + g.title()))
	panel.AddChild(text(fmt.Sprintf("max speed %.2f  max force %.3f", g.sim.Params.MaxSpeed, g.sim.Params.MaxForce)))
	panel.AddChild(text(weightsLine(g.sim.Weights)))
	panel.AddChild(text(fmt.Sprintf("bounds %s  seed %d", g.sim.Bounds.Mode, g.sim.Seed)))

	panel.AddChild(button("Resume", func() {
		g.sim.Paused = false
	}))
	panel.AddChild(button("Restart", func() {
		g.requestScenario(g.name)
	}))
	panel.AddChild(button("Next scenario", func() {
		g.requestScenario(nextScenario(g.name))
	}))
	panel.AddChild(button("Toggle labels", func() {
		ecs.ForEach(g.world, component.WalkerComponent.Kind(), func(_ ecs.Entity, walker *component.Walker) {
			walker.ShowLabels = !walker.ShowLabels
		})
	}))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func weightsLine(w steering.Weights) string {
	return fmt.Sprintf("seek %.1f flee %.1f arrive %.1f wander %.1f sep %.1f align %.1f cohere %.1f",
		w.Seek, w.Flee, w.Arrive, w.Wander, w.Separate, w.Align, w.Cohere)
}

// nextScenario cycles through the embedded scenarios in name order.
func nextScenario(current string) string {
	names := scenarios.Names()
	if len(names) == 0 {
		return current
	}
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
