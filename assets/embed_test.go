package assets

import (
	"testing"

	"github.com/milk9111/stress/prefabs"
)

func TestAudioSpecFilesAreEmbedded(t *testing.T) {
	spec, err := prefabs.LoadAudioSpec()
	if err != nil {
		t.Fatalf("LoadAudioSpec: %v", err)
	}
	for _, c := range spec.Clips {
		if _, err := LoadFile(c.File); err != nil {
			t.Errorf("clip %s: %v", c.Name, err)
		}
	}
	for _, tr := range spec.Tracks {
		if _, err := LoadFile(tr.File); err != nil {
			t.Errorf("track %s: %v", tr.Name, err)
		}
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"":                             "",
		"audio/jump.wav":               "audio/jump.wav",
		"assets/audio/jump.wav":        "audio/jump.wav",
		"/home/me/game/assets/a/b.wav": "a/b.wav",
		"/elsewhere/b.wav":             "b.wav",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Errorf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}
