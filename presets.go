package chirp

import (
	"embed"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed presets/*.yml
var presetFS embed.FS

var presets []Song

func init() {
	fs.WalkDir(presetFS, "presets", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(presetFS, path)
		if err != nil {
			return nil
		}
		var song Song
		if yaml.UnmarshalStrict(data, &song) == nil {
			noExt := path[:len(path)-len(filepath.Ext(path))]
			song.Name = strings.ReplaceAll(filepath.Base(noExt), "_", " ")
			presets = append(presets, song)
		}
		return nil
	})
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
}

// Presets returns copies of the built-in songs, sorted by name. The copies
// are the caller's to mutate.
func Presets() []Song {
	ret := make([]Song, len(presets))
	for i := range presets {
		ret[i] = presets[i].Copy()
	}
	return ret
}

// Preset returns a copy of the built-in song with the given name, with ok
// false if there is none. Names derive from the preset file names, with
// underscores turned into spaces.
func Preset(name string) (Song, bool) {
	for i := range presets {
		if presets[i].Name == name {
			return presets[i].Copy(), true
		}
	}
	return Song{}, false
}
