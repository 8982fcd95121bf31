package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/stress/common"
	"github.com/milk9111/stress/settings"
	"github.com/milk9111/stress/sound"
	"golang.org/x/image/font/basicfont"
)

type menuButton struct {
	label   string
	onClick func()
}

// newMenuUI builds a centered panel with a title and a column of buttons.
// Buttons are colored nine-slices with the built-in basic font so no theme
// assets are needed.
func newMenuUI(title string, panelColor color.Color, buttons ...menuButton) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(panelColor)
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(center),
	))

	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func onOff(label string, on bool) string {
	if on {
		return label + ": on"
	}
	return label + ": off"
}

// NewPauseUI builds the pause menu for a level scene. Toggling a setting
// rebuilds the menu so the labels stay current.
func NewPauseUI(s *LevelScene) *ebitenui.UI {
	g := s.game
	cur := g.Settings()

	click := func(fn func()) func() {
		return func() {
			g.sounds.Play(sound.MenuSelect)
			fn()
		}
	}

	return newMenuUI("Paused", color.NRGBA{A: 200},
		menuButton{label: "Resume", onClick: click(func() {
			s.SetPaused(false)
		})},
		menuButton{label: onOff("Sound", !cur.Muted), onClick: click(func() {
			g.UpdateSettings(func(st *settings.Settings) { st.Muted = !st.Muted })
			s.pauseUI = NewPauseUI(s)
		})},
		menuButton{label: onOff("Fullscreen", cur.Fullscreen), onClick: click(func() {
			g.UpdateSettings(func(st *settings.Settings) { st.Fullscreen = !st.Fullscreen })
			s.pauseUI = NewPauseUI(s)
		})},
		menuButton{label: "Menu", onClick: click(func() {
			g.ChangeScene(sceneMenu)
		})},
	)
}
