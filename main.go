package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stress/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (collider overlay, prefab hot reload)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "start in this level instead of the menu (basename, .tmx optional)")
	skipIntro := flag.Bool("skip-intro", false, "skip the level intro camera pan")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("stress")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Level:     *levelName,
		Debug:     *debug,
		SkipIntro: *skipIntro,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
