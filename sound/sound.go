package sound

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/stress/common"
	"github.com/milk9111/stress/obj"
)

type SoundType int

const (
	Jump SoundType = iota
	Footstep
	GrapplingHook
	HookHit
	MenuSelect

	soundTypeCount
)

func (t SoundType) String() string {
	switch t {
	case Jump:
		return "jump"
	case Footstep:
		return "footstep"
	case GrapplingHook:
		return "grappling_hook"
	case HookHit:
		return "hook_hit"
	case MenuSelect:
		return "menu_select"
	default:
		return fmt.Sprintf("SoundType(%d)", int(t))
	}
}

// ParseSoundType maps a prefab key back to its SoundType.
func ParseSoundType(s string) (SoundType, bool) {
	for t := SoundType(0); t < soundTypeCount; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Overlap decides what a Play does when the sound may already be playing.
type Overlap int

const (
	// Poly starts a new one-shot voice every time.
	Poly Overlap = iota
	// Cut restarts the sound's dedicated voice.
	Cut
	// SkipIfPlaying does nothing while the dedicated voice is playing.
	SkipIfPlaying
)

var ErrUnknownSound = errors.New("sound: unknown sound")

// Voice is one playable instance of a clip. *audio.Player satisfies it.
type Voice interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(v float64)
	Close() error
}

// Bank creates voices for sound clips.
type Bank interface {
	NewVoice(t SoundType) (Voice, error)
}

type oneShot struct {
	t     SoundType
	voice Voice
}

// Manager plays sound effects. Create one per game and hand it to whatever
// needs to make noise.
type Manager struct {
	bank      Bank
	master    float64
	dedicated map[SoundType]Voice
	missing   map[SoundType]bool
	oneShots  []oneShot
}

func NewManager(bank Bank) *Manager {
	return &Manager{
		bank:      bank,
		master:    1,
		dedicated: make(map[SoundType]Voice),
		missing:   make(map[SoundType]bool),
	}
}

func (m *Manager) Play(t SoundType) {
	m.PlayWith(t, 1, Poly)
}

// PlayWith plays t at volume scaled by the master volume. Unknown sounds and
// sounds without a clip are silent.
func (m *Manager) PlayWith(t SoundType, volume float64, mode Overlap) {
	if t < 0 || t >= soundTypeCount || m.bank == nil {
		return
	}
	vol := common.Clamp01(m.master * volume)

	switch mode {
	case Cut:
		v := m.voiceFor(t)
		if v == nil {
			return
		}
		v.Pause()
		if err := v.Rewind(); err != nil {
			log.Printf("sound: rewind %s: %v", t, err)
		}
		v.SetVolume(vol)
		v.Play()
	case SkipIfPlaying:
		v := m.voiceFor(t)
		if v == nil || v.IsPlaying() {
			return
		}
		if err := v.Rewind(); err != nil {
			log.Printf("sound: rewind %s: %v", t, err)
		}
		v.SetVolume(vol)
		v.Play()
	default:
		v := m.newVoice(t)
		if v == nil {
			return
		}
		v.SetVolume(vol)
		v.Play()
		m.oneShots = append(m.oneShots, oneShot{t: t, voice: v})
	}
}

func (m *Manager) newVoice(t SoundType) Voice {
	if m.missing[t] {
		return nil
	}
	v, err := m.bank.NewVoice(t)
	if err != nil {
		// logged once per sound
		log.Printf("sound: %s: %v", t, err)
		m.missing[t] = true
		return nil
	}
	return v
}

func (m *Manager) voiceFor(t SoundType) Voice {
	if v, ok := m.dedicated[t]; ok {
		return v
	}
	v := m.newVoice(t)
	if v != nil {
		m.dedicated[t] = v
	}
	return v
}

// Stop silences every voice playing t.
func (m *Manager) Stop(t SoundType) {
	if v, ok := m.dedicated[t]; ok {
		v.Pause()
		_ = v.Rewind()
	}
	kept := m.oneShots[:0]
	for _, s := range m.oneShots {
		if s.t == t {
			s.voice.Pause()
			_ = s.voice.Close()
			continue
		}
		kept = append(kept, s)
	}
	m.oneShots = kept
}

func (m *Manager) StopAll() {
	for t := SoundType(0); t < soundTypeCount; t++ {
		m.Stop(t)
	}
}

func (m *Manager) SetMasterVolume(v float64) {
	m.master = common.Clamp01(v)
}

func (m *Manager) MasterVolume() float64 { return m.master }

// Active is the number of one-shot voices not yet reaped.
func (m *Manager) Active() int { return len(m.oneShots) }

// Update closes finished one-shot voices. Call once per tick.
func (m *Manager) Update() {
	kept := m.oneShots[:0]
	for _, s := range m.oneShots {
		if s.voice.IsPlaying() {
			kept = append(kept, s)
			continue
		}
		_ = s.voice.Close()
	}
	for i := len(kept); i < len(m.oneShots); i++ {
		m.oneShots[i] = oneShot{}
	}
	m.oneShots = kept
}

// Notify plays the sound for a player event.
func (m *Manager) Notify(e obj.Event) {
	switch e {
	case obj.EventJump:
		m.PlayWith(Jump, 1, Poly)
	case obj.EventFootstep:
		m.PlayWith(Footstep, 0.8, SkipIfPlaying)
	case obj.EventHookFired:
		m.PlayWith(GrapplingHook, 1, Cut)
	case obj.EventHookHit:
		m.PlayWith(HookHit, 1, Poly)
	}
}

// Close releases every voice the manager created.
func (m *Manager) Close() {
	m.StopAll()
	for t, v := range m.dedicated {
		_ = v.Close()
		delete(m.dedicated, t)
	}
}
