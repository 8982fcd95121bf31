package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/stress/common"
	"github.com/milk9111/stress/levels"
	"github.com/milk9111/stress/obj"
	"golang.org/x/image/colornames"
)

const (
	defaultPlatformLeg = 2.0
	// killDepth is how far below the level bottom the player may fall before
	// being respawned, for levels without a fall box under every gap.
	killDepth = 4.0
)

type LevelScene struct {
	game  *Game
	level *levels.Level

	world     *obj.CollisionWorld
	triggers  *obj.TriggerWorld
	surfaces  []*obj.Surface
	player    *obj.Player
	camera    *obj.Camera
	cinematic *obj.Cinematic
	parallax  *obj.Parallax
	input     *Input

	paused  bool
	pauseUI *ebitenui.UI
}

func NewLevelScene(g *Game, lvl *levels.Level) *LevelScene {
	s := &LevelScene{
		game:     g,
		level:    lvl,
		world:    obj.NewCollisionWorld(),
		triggers: obj.NewTriggerWorld(lvl.Bounds()),
		input:    NewInput(),
	}

	for _, r := range lvl.Ground {
		s.world.AddGround(r)
	}
	for _, h := range lvl.Hookables {
		surf := &obj.Surface{Name: h.Name, Bounds: h.Bounds}
		s.surfaces = append(s.surfaces, surf)
		s.world.AddHookable(h.Bounds, surf)
	}
	for _, p := range lvl.Platforms {
		cx, cy := p.Bounds.Center()
		from := cp.Vector{X: cx, Y: cy}
		leg := p.LegSeconds
		if leg <= 0 {
			leg = defaultPlatformLeg
		}
		s.world.AddPlatform(obj.NewPlatform(p.Name, from, from.Add(p.Travel), cp.Vector{X: p.Bounds.Width, Y: p.Bounds.Height}, leg))
	}

	for _, sc := range lvl.Scenes {
		s.triggers.AddScene(&obj.SceneTrigger{Name: sc.Name, Scene: sc.Scene, Bounds: sc.Bounds})
	}
	for _, f := range lvl.Falls {
		s.triggers.AddFall(&obj.FallBox{Name: f.Name, Bounds: f.Bounds, Respawn: f.Respawn, HasRespawn: f.HasRespawn})
	}

	s.player = obj.NewPlayer(lvl.Spawn, g.PlayerConfig(), obj.PlayerDeps{
		Pool:     g.pool,
		Sensor:   s.world,
		Probe:    s.world,
		Solids:   s.world,
		Notifier: g.sounds,
		Debug:    g.opts.Debug,
	})

	s.camera = obj.NewCamera(common.BaseWidth, common.BaseHeight, 1)
	s.camera.SetBounds(lvl.Bounds())
	s.ApplyTuning()
	s.camera.SnapTo(s.player.Body.Pos)

	layers := make([]*obj.ParallaxLayer, 0, len(lvl.Parallax))
	for _, l := range lvl.Parallax {
		layers = append(layers, &obj.ParallaxLayer{
			Name:      l.Name,
			Origin:    cp.Vector{X: l.Bounds.X, Y: l.Bounds.Y},
			Size:      cp.Vector{X: l.Bounds.Width, Y: l.Bounds.Height},
			Strength:  l.Strength,
			MaxOffset: l.MaxOffset,
			Color:     l.Color,
		})
	}
	s.parallax = obj.NewParallax(layers...)

	if !g.opts.SkipIntro {
		s.cinematic = obj.NewCinematic(g.cameraSpec.Cinematic.Config(), lvl.CameraPath)
		if s.cinematic.Start() {
			s.player.LockInput(true)
			s.player.Halt()
			s.camera.SetPosition(lvl.CameraPath[0])
		}
	}
	s.parallax.Anchor(s.camera.Pos)

	s.pauseUI = NewPauseUI(s)
	g.PlayMusic(lvl.Music)
	log.Printf("level: loaded %s", lvl.Name)
	return s
}

// ApplyTuning pushes the game's current prefab values into the scene.
func (s *LevelScene) ApplyTuning() {
	s.player.SetConfig(s.game.PlayerConfig())
	cam := s.game.cameraSpec
	if cam.Zoom > 0 {
		s.camera.SetZoom(cam.Zoom)
	}
	if cam.Smoothness > 0 {
		s.camera.SetSmooth(cam.Smoothness)
	}
}

// Leave hands any borrowed hook back to the shared pool.
func (s *LevelScene) Leave() {
	s.player.Respawn()
}

func (s *LevelScene) SetPaused(p bool) {
	s.paused = p
}

func (s *LevelScene) Update(dt float64) error {
	frame := s.input.Poll(s.camera, s.player)
	if frame.Pause {
		s.paused = !s.paused
	}
	if s.paused {
		s.pauseUI.Update()
		return nil
	}

	intro := s.cinematic != nil && s.cinematic.Running()

	s.world.Step(dt)
	s.player.Update(dt, frame.InputFrame)

	if s.player.Body.Pos.Y < -killDepth {
		s.player.Respawn()
	}

	for _, ev := range s.triggers.Update(s.player.Feet()) {
		switch ev.Kind {
		case obj.TriggerScene:
			if ev.Scene != "" {
				s.game.ChangeScene(ev.Scene)
			}
		case obj.TriggerFall:
			if ev.HasRespawn {
				s.player.RespawnAt(ev.Respawn)
			} else {
				s.player.Respawn()
			}
		}
	}

	if intro {
		pos := s.cinematic.Update(dt, frame.AnyPressed, s.player.Body.Pos)
		s.camera.SetPosition(pos)
		if s.cinematic.Done() {
			s.player.LockInput(false)
		}
	} else {
		s.camera.Follow(s.player.Body.Pos)
	}
	s.parallax.Update(s.camera.Pos)
	return nil
}

func (s *LevelScene) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	for _, l := range s.parallax.Layers() {
		pos := l.Position()
		fillWorldRect(screen, s.camera, common.Rect{X: pos.X, Y: pos.Y, Width: l.Size.X, Height: l.Size.Y}, layerColor(l.Color, colornames.Midnightblue))
	}

	for _, r := range s.world.Solids() {
		fillWorldRect(screen, s.camera, r, groundColor)
	}
	for _, surf := range s.surfaces {
		fillWorldRect(screen, s.camera, surf.Bounds, hookableColor)
	}
	for _, pl := range s.world.Platforms() {
		fillWorldRect(screen, s.camera, pl.Bounds(), platformColor)
	}

	s.drawPlayer(screen)

	if s.game.opts.Debug {
		s.world.DebugDraw(&spaceDrawer{screen: screen, cam: s.camera})
		for _, sc := range s.triggers.Scenes() {
			strokeWorldRect(screen, s.camera, sc.Bounds, 2, sceneColor)
		}
		for _, f := range s.triggers.Falls() {
			fillWorldRect(screen, s.camera, f.Bounds, fallColor)
		}
		status := s.level.Name + " " + s.player.State().String()
		if s.player.InputLocked() {
			status += " (locked)"
		}
		ebitenutil.DebugPrintAt(screen, status, 0, 16)
	}

	if s.paused {
		s.pauseUI.Draw(screen)
	}
}

func (s *LevelScene) drawPlayer(screen *ebiten.Image) {
	style := s.game.playerSpec.Style
	p := s.player
	half := p.Config.HalfSize

	body := common.Rect{X: p.Body.Pos.X - half.X, Y: p.Body.Pos.Y - half.Y, Width: half.X * 2, Height: half.Y * 2}
	fillWorldRect(screen, s.camera, body, colorOr(style.Body, colornames.Crimson))

	// eye on the side the player faces
	eye := cp.Vector{X: p.Body.Pos.X + half.X*0.5, Y: p.Body.Pos.Y + half.Y*0.5}
	if p.FacingLeft() {
		eye.X = p.Body.Pos.X - half.X*0.5
	}
	worldCircle(screen, s.camera, eye, 0.06, colornames.White)

	if h := p.Hook(); h != nil && h.Active() {
		width := style.RopeWidth
		if width <= 0 {
			width = 2
		}
		worldLine(screen, s.camera, p.HookOrigin(), h.Position(), width, colorOr(style.Rope, colornames.Lightgrey))
		worldCircle(screen, s.camera, h.Position(), 0.15, colorOr(style.Hook, colornames.Orange))
		return
	}
	worldCircle(screen, s.camera, p.HookOrigin(), 0.08, aimColor)
}
