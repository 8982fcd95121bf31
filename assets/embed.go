package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/stress/prefabs"
	"github.com/milk9111/stress/sound"
)

const SampleRate = 44100

//go:embed audio/*.wav
var assetsFS embed.FS

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context. Ebiten allows only one.
func AudioContext() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// decodePCM decodes an embedded wav into the context's native PCM format.
func decodePCM(ctx *audio.Context, path string) ([]byte, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".wav") {
		// already-decoded PCM
		return b, nil
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return io.ReadAll(stream)
}

type clip struct {
	pcm    []byte
	volume float64
}

// SoundBank serves sound effect voices from decoded clips.
type SoundBank struct {
	ctx   *audio.Context
	clips map[sound.SoundType]clip
}

// NewSoundBank decodes every clip named in spec. Clips that fail to decode
// are reported in the returned error but the bank stays usable without them.
func NewSoundBank(ctx *audio.Context, spec *prefabs.AudioSpec) (*SoundBank, error) {
	b := &SoundBank{ctx: ctx, clips: make(map[sound.SoundType]clip)}
	byType, unknown := spec.ClipMap()

	var errs []string
	for _, name := range unknown {
		errs = append(errs, fmt.Sprintf("unknown clip %q", name))
	}
	for t, c := range byType {
		pcm, err := decodePCM(ctx, c.File)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", t, err))
			continue
		}
		vol := c.Volume
		if vol <= 0 {
			vol = 1
		}
		b.clips[t] = clip{pcm: pcm, volume: vol}
	}

	if len(errs) > 0 {
		return b, fmt.Errorf("assets: sound bank: %s", strings.Join(errs, "; "))
	}
	return b, nil
}

func (b *SoundBank) NewVoice(t sound.SoundType) (sound.Voice, error) {
	c, ok := b.clips[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sound.ErrUnknownSound, t)
	}
	p := b.ctx.NewPlayerFromBytes(c.pcm)
	if c.volume == 1 {
		return p, nil
	}
	return &scaledVoice{Player: p, scale: c.volume}, nil
}

// scaledVoice applies a clip's own volume under the manager's.
type scaledVoice struct {
	*audio.Player
	scale float64
}

func (v *scaledVoice) SetVolume(vol float64) {
	v.Player.SetVolume(vol * v.scale)
}

// MusicBank opens looping music tracks.
type MusicBank struct {
	ctx    *audio.Context
	tracks map[string]string
}

func NewMusicBank(ctx *audio.Context, spec *prefabs.AudioSpec) *MusicBank {
	b := &MusicBank{ctx: ctx, tracks: make(map[string]string, len(spec.Tracks))}
	for _, t := range spec.Tracks {
		b.tracks[t.Name] = t.File
	}
	return b
}

func (b *MusicBank) Open(name string) (sound.Voice, error) {
	file, ok := b.tracks[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown track %q", name)
	}
	data, err := LoadFile(file)
	if err != nil {
		return nil, fmt.Errorf("assets: track %q: %w", name, err)
	}
	stream, err := wav.DecodeWithSampleRate(b.ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode track %q: %w", name, err)
	}
	loop := audio.NewInfiniteLoop(stream, stream.Length())
	p, err := b.ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("assets: track %q: %w", name, err)
	}
	return p, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
