package chirp

import (
	"fmt"
	"os"
	"path/filepath"
)

type (
	// DumpSink accepts encoded songs, for example to persist them. Store
	// makes a single blocking WriteDump call per song and propagates its
	// error unmodified; there are no retries.
	DumpSink interface {
		WriteDump(name string, data []byte) error
	}

	// DirSink is a DumpSink storing each dump as a <name>.bin file in Dir,
	// creating the directory if needed.
	DirSink struct {
		Dir string
	}
)

func (d DirSink) WriteDump(name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.Dir, name+".bin"), data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}
	return nil
}

// Store encodes the song and hands the bytes to sink under the song's
// name. A song needs a name before it can be stored.
func (s *Song) Store(sink DumpSink) error {
	if s.Name == "" {
		return fmt.Errorf("cannot store a song without a name: %w", ErrInvalidArgument)
	}
	data, err := s.Dump()
	if err != nil {
		return err
	}
	return sink.WriteDump(s.Name, data)
}
