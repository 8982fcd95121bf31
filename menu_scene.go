package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stress/sound"
	"golang.org/x/image/colornames"
)

type MenuScene struct {
	ui *ebitenui.UI
}

func NewMenuScene(g *Game) *MenuScene {
	g.PlayMusic(g.audioSpec.MenuTrack)
	return &MenuScene{
		ui: newMenuUI("STRESS", color.NRGBA{R: 0x10, G: 0x18, B: 0x28, A: 230},
			menuButton{label: "Start", onClick: func() {
				g.sounds.Play(sound.MenuSelect)
				g.ChangeScene(firstLevel)
			}},
			menuButton{label: "Quit", onClick: func() {
				g.sounds.Play(sound.MenuSelect)
				g.Quit()
			}},
		),
	}
}

func (m *MenuScene) Update(dt float64) error {
	m.ui.Update()
	return nil
}

func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	m.ui.Draw(screen)
}
