package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/stress/assets"
	"github.com/milk9111/stress/common"
	"github.com/milk9111/stress/levels"
	"github.com/milk9111/stress/obj"
	"github.com/milk9111/stress/prefabs"
	"github.com/milk9111/stress/settings"
	"github.com/milk9111/stress/sound"
)

const (
	appName    = "stress"
	sceneMenu  = "menu"
	firstLevel = "level1"

	fadeSeconds = 0.3
)

// Scene is one screen of the game. The Game owns the shared services and
// hands them to scenes on construction.
type Scene interface {
	Update(dt float64) error
	Draw(screen *ebiten.Image)
}

type Options struct {
	Level     string
	Debug     bool
	SkipIntro bool
}

type Game struct {
	opts Options

	scene      Scene
	transition *obj.Transition
	quit       bool

	playerSpec *prefabs.PlayerSpec
	hookSpec   *prefabs.HookSpec
	cameraSpec *prefabs.CameraSpec
	audioSpec  *prefabs.AudioSpec

	pool     *obj.HookPool
	sounds   *sound.Manager
	music    *sound.Music
	settings *settings.Store
	watcher  *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{opts: opts}

	var err error
	if g.playerSpec, err = prefabs.LoadPlayerSpec(); err != nil {
		return nil, err
	}
	if g.hookSpec, err = prefabs.LoadHookSpec(); err != nil {
		return nil, err
	}
	if g.cameraSpec, err = prefabs.LoadCameraSpec(); err != nil {
		return nil, err
	}
	if g.audioSpec, err = prefabs.LoadAudioSpec(); err != nil {
		return nil, err
	}

	g.settings, err = settings.Open(appName)
	if err != nil {
		log.Printf("game: %v (settings will not persist)", err)
		g.settings = settings.NewStore(nil)
	}
	if _, err := g.settings.Load(); err != nil {
		log.Printf("game: %v", err)
	}

	ctx := assets.AudioContext()
	bank, err := assets.NewSoundBank(ctx, g.audioSpec)
	if err != nil {
		log.Printf("game: %v", err)
	}
	g.sounds = sound.NewManager(bank)
	g.music = sound.NewMusic(assets.NewMusicBank(ctx, g.audioSpec))
	g.applySettings()

	g.pool = obj.NewHookPool(g.hookSpec.Pool(), g.hookSpec.Options())

	if opts.Debug {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("game: prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.transition = obj.NewTransition(fadeSeconds, g.switchScene)

	start := sceneMenu
	if opts.Level != "" {
		start = opts.Level
	}
	g.switchScene(start)
	return g, nil
}

// ChangeScene fades out, switches to name at full black and fades back in.
// Requests made during a transition are dropped.
func (g *Game) ChangeScene(name string) {
	if !g.transition.Start(name) {
		log.Printf("game: scene change to %q ignored, transition running", name)
	}
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) switchScene(name string) {
	if ls, ok := g.scene.(*LevelScene); ok {
		ls.Leave()
	}
	if name == sceneMenu {
		g.scene = NewMenuScene(g)
		return
	}

	lvl, err := levels.LoadEmbedded(name)
	if err != nil {
		log.Printf("game: %v", err)
		if g.scene == nil {
			g.scene = NewMenuScene(g)
		}
		return
	}
	g.scene = NewLevelScene(g, lvl)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollPrefabs()

	dt := common.DeltaTime
	if !g.transition.Update(dt) {
		if err := g.scene.Update(dt); err != nil {
			return err
		}
	}
	g.sounds.Update()
	g.music.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if a := g.transition.Alpha(); a > 0 {
		vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, color.NRGBA{A: uint8(a * 255)}, false)
	}
	if g.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  voices: %d  music: %s", ebiten.ActualFPS(), g.sounds.Active(), g.music.Current()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.sounds.Close()
	g.music.Close()
}

// PlayMusic crossfades to a track listed in audio.yaml.
func (g *Game) PlayMusic(name string) {
	if name == "" {
		return
	}
	track, ok := g.audioSpec.Track(name)
	if !ok {
		log.Printf("game: unknown music track %q", name)
		return
	}
	vol := track.Volume
	if vol <= 0 {
		vol = 1
	}
	g.music.Play(name, g.audioSpec.Fade(), vol)
}

func (g *Game) Settings() settings.Settings {
	return g.settings.Current()
}

// UpdateSettings changes, saves and applies the user settings.
func (g *Game) UpdateSettings(fn func(*settings.Settings)) {
	g.settings.Update(fn)
	g.applySettings()
}

func (g *Game) applySettings() {
	s := g.settings.Current()
	g.sounds.SetMasterVolume(s.SFX())
	g.music.SetMasterVolume(s.Music())
	if ebiten.IsFullscreen() != s.Fullscreen {
		ebiten.SetFullscreen(s.Fullscreen)
	}
}

func (g *Game) PlayerConfig() obj.PlayerConfig {
	return g.playerSpec.PlayerConfig(g.hookSpec)
}

// pollPrefabs re-reads prefabs changed on disk and pushes them into the
// running scene.
func (g *Game) pollPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("game: prefab watcher: %v", err)
	default:
	}

	for _, name := range g.watcher.Poll() {
		var err error
		switch name {
		case "player.yaml":
			var spec *prefabs.PlayerSpec
			if spec, err = prefabs.LoadPlayerSpec(); err == nil {
				g.playerSpec = spec
			}
		case "hook.yaml":
			var spec *prefabs.HookSpec
			if spec, err = prefabs.LoadHookSpec(); err == nil {
				g.hookSpec = spec
				g.pool.SetOptions(spec.Options())
			}
		case "camera.yaml":
			var spec *prefabs.CameraSpec
			if spec, err = prefabs.LoadCameraSpec(); err == nil {
				g.cameraSpec = spec
			}
		default:
			log.Printf("game: %s changed; restart to apply", name)
			continue
		}
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			continue
		}
		log.Printf("game: reloaded %s", name)
		if ls, ok := g.scene.(*LevelScene); ok {
			ls.ApplyTuning()
		}
	}
}
