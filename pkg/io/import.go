package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/scene"
)

// ReadFile decodes a scene file from r without replaying it.
//
// ReadFile fails with INVALID_INPUT on malformed JSON or unknown fields and
// with INVALID_FORMAT on an unsupported version. It does not close r.
func ReadFile(r io.Reader) (File, error) {
	var f File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		if errors.GetCode(err) != "" {
			return File{}, err
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene file")
	}
	if f.Version != Version {
		return File{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene file version %d (want %d)", f.Version, Version)
	}
	return f, nil
}

// Scene replays the recorded calls. Builder errors are returned unchanged,
// so a bad anchor in a file reports INVALID_ANCHOR just like code would.
func (f File) Scene() (*scene.Scene, error) {
	return scene.Replay(f.Canvas, f.Calls)
}

// ReadScene decodes a scene file from r and replays it.
func ReadScene(r io.Reader) (*scene.Scene, error) {
	f, err := ReadFile(r)
	if err != nil {
		return nil, err
	}
	return f.Scene()
}

// ImportScene reads the scene file at path.
func ImportScene(path string) (*scene.Scene, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f.Scene()
}

// Open reads and decodes the scene file at path.
func Open(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer fh.Close()
	return ReadFile(fh)
}
