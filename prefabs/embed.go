package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// Dir is where prefabs on disk override the embedded copies.
const Dir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, Dir+"/"); idx >= 0 {
		return s[idx+len(Dir)+1:]
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
