// Package export renders songs into C sources ready for embedding in a
// player firmware: a header with the song's constants and an include file
// carrying the dump as a byte array, terminated by one zeroed record so the
// player knows where the stream ends.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pulsevolt/chirp"
)

type Exporter struct {
	Template *template.Template
}

//go:embed templates/*
var templateFS embed.FS

// New returns a new exporter using the built-in templates.
func New() (*Exporter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.*")
	if err != nil {
		return nil, fmt.Errorf("could not create templates: %v", err)
	}
	return &Exporter{Template: tmpl}, nil
}

// NewFromTemplates returns an exporter that renders the templates found in
// templateDirectory instead of the built-in ones. The directory needs a
// song.h and a song.inc template.
func NewFromTemplates(templateDirectory string) (*Exporter, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %v`, templateDirectory, err)
	}
	return &Exporter{Template: tmpl}, nil
}

// SongMacros is the data the song templates are executed with.
type SongMacros struct {
	Song     *chirp.Song
	Symbol   string
	Data     []byte
	Segments int
}

func NewSongMacros(song *chirp.Song) (*SongMacros, error) {
	data, err := song.Dump()
	if err != nil {
		return nil, err
	}
	return &SongMacros{Song: song, Symbol: Symbol(song.Name), Data: data, Segments: song.NumSegments()}, nil
}

// Song renders every song template and returns the populated contents,
// keyed by the template's extension.
func (e *Exporter) Song(song *chirp.Song) (map[string]string, error) {
	macros, err := NewSongMacros(song)
	if err != nil {
		return nil, fmt.Errorf("could not encode song: %v", err)
	}
	templates := []string{"song.h", "song.inc"}
	retmap := map[string]string{}
	for _, templateName := range templates {
		populatedTemplate, extension, err := e.compile(templateName, macros)
		if err != nil {
			return nil, fmt.Errorf(`could not execute template "%v": %v`, templateName, err)
		}
		retmap[extension] = populatedTemplate
	}
	return retmap, nil
}

func (e *Exporter) compile(templateName string, data interface{}) (string, string, error) {
	result := bytes.NewBufferString("")
	err := e.Template.ExecuteTemplate(result, templateName, data)
	extension := filepath.Ext(templateName)
	return result.String(), extension, err
}

var symbolRegexp = regexp.MustCompile("[^a-zA-Z0-9_]+")

// Symbol turns a song name into a C identifier: illegal runs become single
// underscores, and a leading digit gets an underscore prefix. An empty or
// fully illegal name comes out as "song".
func Symbol(name string) string {
	s := symbolRegexp.ReplaceAllString(name, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "song"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}
