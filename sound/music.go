package sound

import (
	"log"

	"github.com/milk9111/stress/common"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tracks opens looping voices for music tracks by name.
type Tracks interface {
	Open(name string) (Voice, error)
}

type musicSlot struct {
	name   string
	voice  Voice
	volume float64
	from   float64
	to     float64
}

// Music crossfades between looping tracks using two slots. The active slot
// holds the track fading in; the other holds whatever is fading out.
type Music struct {
	tracks Tracks
	master float64
	voices map[string]Voice

	slots  [2]*musicSlot
	active int
	fade   *gween.Tween
}

func NewMusic(tracks Tracks) *Music {
	return &Music{tracks: tracks, master: 1, voices: make(map[string]Voice)}
}

// Play crossfades to track over fadeSeconds, ending at volume. Playing the
// current track only retargets its volume. A call during a fade starts from
// the volumes reached so far.
func (m *Music) Play(track string, fadeSeconds, volume float64) {
	volume = common.Clamp01(volume)

	if cur := m.slots[m.active]; cur != nil && cur.name == track {
		cur.from, cur.to = cur.volume, volume
		if other := m.slots[1-m.active]; other != nil {
			other.from, other.to = other.volume, 0
		}
		m.startFade(fadeSeconds)
		return
	}

	idle := 1 - m.active
	next := m.slots[idle]
	if next == nil || next.name != track {
		voice, err := m.voiceFor(track)
		if err != nil {
			log.Printf("music: load %q: %v", track, err)
			return
		}
		if next != nil {
			m.silence(next)
		}
		next = &musicSlot{name: track, voice: voice}
		_ = voice.Rewind()
		voice.SetVolume(0)
		voice.Play()
		m.slots[idle] = next
	}
	next.from, next.to = next.volume, volume

	if cur := m.slots[m.active]; cur != nil {
		cur.from, cur.to = cur.volume, 0
	}
	m.active = idle
	m.startFade(fadeSeconds)
}

// Stop fades every slot out over fadeSeconds and then stops them.
func (m *Music) Stop(fadeSeconds float64) {
	for _, s := range m.slots {
		if s != nil {
			s.from, s.to = s.volume, 0
		}
	}
	m.startFade(fadeSeconds)
}

func (m *Music) startFade(seconds float64) {
	if seconds <= 0 {
		m.fade = nil
		m.apply(1)
		m.finish()
		return
	}
	m.fade = gween.New(0, 1, float32(seconds), ease.Linear)
}

// Update advances an ongoing fade. Call once per tick.
func (m *Music) Update(dt float64) {
	if m.fade == nil {
		return
	}
	t, done := m.fade.Update(float32(dt))
	m.apply(float64(t))
	if done {
		m.fade = nil
		m.finish()
	}
}

func (m *Music) apply(t float64) {
	for _, s := range m.slots {
		if s == nil {
			continue
		}
		if t >= 1 {
			s.volume = s.to
		} else {
			s.volume = common.Lerp(s.from, s.to, t)
		}
		s.voice.SetVolume(s.volume * m.master)
	}
}

// finish stops slots that faded to silence.
func (m *Music) finish() {
	for i, s := range m.slots {
		if s != nil && s.to <= 0 {
			m.silence(s)
			m.slots[i] = nil
		}
	}
}

func (m *Music) silence(s *musicSlot) {
	s.volume = 0
	s.voice.SetVolume(0)
	s.voice.Pause()
	_ = s.voice.Rewind()
}

func (m *Music) voiceFor(track string) (Voice, error) {
	if v, ok := m.voices[track]; ok {
		return v, nil
	}
	if m.tracks == nil {
		return nil, ErrUnknownSound
	}
	v, err := m.tracks.Open(track)
	if err != nil {
		return nil, err
	}
	m.voices[track] = v
	return v, nil
}

func (m *Music) SetMasterVolume(v float64) {
	m.master = common.Clamp01(v)
	for _, s := range m.slots {
		if s != nil {
			s.voice.SetVolume(s.volume * m.master)
		}
	}
}

func (m *Music) MasterVolume() float64 { return m.master }

// Current is the track fading in or playing, or "" when silent.
func (m *Music) Current() string {
	if s := m.slots[m.active]; s != nil && s.to > 0 {
		return s.name
	}
	return ""
}

func (m *Music) Fading() bool { return m.fade != nil }

// Volume reports the unscaled volume of track, 0 when it is not loaded.
func (m *Music) Volume(track string) float64 {
	for _, s := range m.slots {
		if s != nil && s.name == track {
			return s.volume
		}
	}
	return 0
}

func (m *Music) Close() {
	for i, s := range m.slots {
		if s != nil {
			m.silence(s)
			m.slots[i] = nil
		}
	}
	for name, v := range m.voices {
		_ = v.Close()
		delete(m.voices, name)
	}
}
