package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/geom"
	"github.com/matzehuels/schematic/pkg/scene"
)

// Version is the current scene file version.
const Version = 1

// File is the decoded form of a scene file.
type File struct {
	Version int          `json:"version"`
	Name    string       `json:"name,omitempty"`
	Canvas  geom.Size    `json:"canvas"`
	Calls   []scene.Call `json:"calls"`
}

// NewFile records s as a scene file named name.
func NewFile(s *scene.Scene, name string) File {
	return File{Version: Version, Name: name, Canvas: s.Canvas(), Calls: s.Calls()}
}

// WriteScene encodes s as an indented scene file.
func WriteScene(w io.Writer, s *scene.Scene, name string) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil scene")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewFile(s, name)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportScene writes s to a scene file at path.
// This is a convenience wrapper around [WriteScene] for file-based output.
func ExportScene(path string, s *scene.Scene, name string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteScene(f, s, name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
