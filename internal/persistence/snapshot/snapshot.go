// Package snapshot writes and reads the save files: zstd-compressed JSON
// blobs, one per concern.
package snapshot

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Write serializes v as JSON and compresses it to path.
func Write(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	return json.NewEncoder(bw).Encode(v)
}

// Read decompresses path and decodes its JSON into v.
func Read(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	return json.NewDecoder(bufio.NewReaderSize(dec, 256*1024)).Decode(v)
}

// Paths derives the per-concern file names from a save's base path.
type Paths struct {
	Base string
}

func (p Paths) Parameters() string { return p.Base + ".parameters" }
func (p Paths) Sim() string        { return p.Base + ".sim" }
func (p Paths) Labels() string     { return p.Base + ".labels" }
