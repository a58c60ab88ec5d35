// Package benchconfig reads and writes the TOML document handed to the
// bench executable on every sweep iteration.
package benchconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Document is the configuration consumed by bench. Field order is the
// order keys appear in the encoded file.
type Document struct {
	InputSize  int64 `toml:"input-size"`
	InputRange int64 `toml:"input-range"`
	Seed       int64 `toml:"seed"`
}

// New returns a Document for the given input size. The input range always
// equals the size.
func New(size, seed int64) Document {
	return Document{
		InputSize:  size,
		InputRange: size,
		Seed:       seed,
	}
}

// Encode writes d to w as TOML.
func (d Document) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}

	return nil
}

// WriteFile replaces the contents of path with d. The file is closed on
// every return path and a failed close is reported.
func WriteFile(path string, d Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := d.Encode(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// ReadFile decodes the document stored at path.
func ReadFile(path string) (Document, error) {
	var d Document

	md, err := toml.DecodeFile(path, &d)
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Document{}, fmt.Errorf(
			"decode %s: unknown keys %v", path, undecoded,
		)
	}

	return d, nil
}
