package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/pulsevolt/chirp"
	"github.com/pulsevolt/chirp/export"
	"github.com/pulsevolt/chirp/listing"
	"github.com/pulsevolt/chirp/midi"
	"github.com/pulsevolt/chirp/version"
)

func main() {
	safe := pflag.BoolP("safe", "n", false, "Never overwrite files; if a file already exists and would be overwritten, give an error.")
	list := pflag.BoolP("list", "l", false, "Do not write files; just list files that would change instead.")
	stdout := pflag.BoolP("stdout", "s", false, "Do not write files; write to standard output instead.")
	help := pflag.BoolP("help", "h", false, "Show help.")
	binOut := pflag.BoolP("bin", "b", false, "Output the song as a .bin dump. This is the default when no other output is selected.")
	jsonOut := pflag.BoolP("json", "j", false, "Output the song as a .json file.")
	yamlOut := pflag.BoolP("yaml", "y", false, "Output the song as a .yml file.")
	cOut := pflag.BoolP("c-sources", "c", false, "Output the song as C sources (.h and .inc) for embedding in a player.")
	midiOut := pflag.BoolP("midi", "m", false, "Output the song as a .mid file.")
	listingOut := pflag.BoolP("listing", "r", false, "Print the song as a segment listing to standard output.")
	tmplDir := pflag.StringP("templates", "t", "", "When outputting C sources, use the templates in this directory instead of the built-in ones.")
	formatName := pflag.StringP("format", "f", "", "Wire format: plain, instrument or wide. Selects how .bin inputs are decoded and overrides the song's format otherwise.")
	outPath := pflag.StringP("output", "o", "", "Directory or filename where to write the outputs. Extension is ignored. The directory and its parents are created if needed. By default, everything is placed in the current working directory.")
	presetName := pflag.StringP("preset", "p", "", "Process the named built-in song instead of an input file.")
	debug := pflag.BoolP("debug", "d", false, "Dump the parsed song to standard error before outputting.")
	versionFlag := pflag.BoolP("version", "v", false, "Print version.")
	pflag.Usage = printUsage
	pflag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if (pflag.NArg() == 0 && *presetName == "") || *help {
		pflag.Usage()
		os.Exit(0)
	}
	if !*binOut && !*jsonOut && !*yamlOut && !*cOut && !*midiOut && !*listingOut {
		*binOut = true
	}
	format := chirp.FormatPlain
	if *formatName != "" {
		var err error
		format, err = chirp.ParseFormat(*formatName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error parsing format: %v\n", err)
			os.Exit(1)
		}
	}
	var exporter *export.Exporter
	if *cOut {
		var err error
		if *tmplDir != "" {
			exporter, err = export.NewFromTemplates(*tmplDir)
		} else {
			exporter, err = export.New()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating exporter: %v\n", err)
			os.Exit(1)
		}
	}
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			fmt.Print(string(contents))
			return nil
		}
		_, name := filepath.Split(filename)
		var dir string
		if *outPath != "" {
			// reuse the path as the output directory when it already is one
			if info, err := os.Stat(*outPath); err == nil && info.IsDir() {
				dir = *outPath
			} else {
				outdir, outname := filepath.Split(*outPath)
				if outdir != "" {
					dir = outdir
				}
				if outname != "" {
					name = outname
				}
			}
		}
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
			}
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
		f := filepath.Join(dir, name)
		original, err := os.ReadFile(f)
		if err == nil {
			if bytes.Equal(original, contents) {
				return nil // no need to update
			}
			if !*list && *safe {
				return fmt.Errorf("file %v would be overwritten", f)
			}
		}
		if *list {
			fmt.Println(f)
			return nil
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %v", dir, err)
		}
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		return nil
	}
	process := func(filename string, song *chirp.Song) error {
		if *formatName != "" {
			song.Format = format
		}
		if song.Name == "" {
			base := filepath.Base(filename)
			song.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if *debug {
			spew.Fdump(os.Stderr, song)
		}
		if *listingOut {
			fmt.Print(listing.Styled(song, listing.DefaultStyles()))
		}
		if *binOut {
			data, err := song.Dump()
			if err != nil {
				return fmt.Errorf("could not dump the song: %v", err)
			}
			if err := output(filename, ".bin", data); err != nil {
				return fmt.Errorf("error outputting bin file: %v", err)
			}
		}
		if *cOut {
			sources, err := exporter.Song(song)
			if err != nil {
				return fmt.Errorf("exporting C sources failed: %v", err)
			}
			for extension, code := range sources {
				if err := output(filename, extension, []byte(code)); err != nil {
					return fmt.Errorf("error outputting %v file: %v", extension, err)
				}
			}
		}
		if *midiOut {
			data, err := midi.Bytes(song)
			if err != nil {
				return fmt.Errorf("could not convert the song to midi: %v", err)
			}
			if err := output(filename, ".mid", data); err != nil {
				return fmt.Errorf("error outputting mid file: %v", err)
			}
		}
		if *jsonOut {
			jsonSong, err := json.Marshal(song)
			if err != nil {
				return fmt.Errorf("could not marshal the song as json file: %v", err)
			}
			if err := output(filename, ".json", jsonSong); err != nil {
				return fmt.Errorf("error outputting json file: %v", err)
			}
		}
		if *yamlOut {
			yamlSong, err := yaml.Marshal(song)
			if err != nil {
				return fmt.Errorf("could not marshal the song as yaml file: %v", err)
			}
			if err := output(filename, ".yml", yamlSong); err != nil {
				return fmt.Errorf("error outputting yaml file: %v", err)
			}
		}
		return nil
	}
	load := func(filename string) error {
		inputBytes, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filename, err)
		}
		var song *chirp.Song
		if filepath.Ext(filename) == ".bin" {
			song, err = chirp.ParseDump(inputBytes, format)
			if err != nil {
				return fmt.Errorf("could not parse the dump: %v", err)
			}
		} else {
			song = &chirp.Song{}
			if errJSON := json.Unmarshal(inputBytes, song); errJSON != nil {
				if errYaml := yaml.Unmarshal(inputBytes, song); errYaml != nil {
					return fmt.Errorf("song could not be unmarshaled as a .json (%v) or .yml (%v)", errJSON, errYaml)
				}
			}
		}
		return process(filename, song)
	}
	retval := 0
	if *presetName != "" {
		song, ok := chirp.Preset(*presetName)
		if !ok {
			var names []string
			for _, p := range chirp.Presets() {
				names = append(names, p.Name)
			}
			fmt.Fprintf(os.Stderr, "no preset %q; the built-in songs are: %v\n", *presetName, strings.Join(names, ", "))
			retval = 1
		} else if err := process(strings.ReplaceAll(song.Name, " ", "_"), &song); err != nil {
			fmt.Fprintf(os.Stderr, "could not process preset %v: %v\n", *presetName, err)
			retval = 1
		}
	}
	for _, param := range pflag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			var files []string
			for _, pattern := range []string{"*.yml", "*.json", "*.bin"} {
				found, err := filepath.Glob(filepath.Join(param, pattern))
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not glob the path %v: %v\n", param, err)
					retval = 1
					continue
				}
				files = append(files, found...)
			}
			for _, file := range files {
				if err := load(file); err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			if err := load(param); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Chirp song compiler. Inputs songs as .yml, .json or .bin files; outputs dumps (.bin), C sources (.h/.inc), MIDI (.mid), segment listings or the song itself (.yml/.json).\nUsage: %s [flags] [path ...]\n", os.Args[0])
	pflag.PrintDefaults()
}
