package world

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeRLE encodes a row-major sequence of small ids into
// base64(varint pairs). The pairs are (id, run_len) repeated. Used for the
// visibility grid in save blobs.
func EncodeRLE(ids []uint16) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(ids) {
		b := ids[i]
		run := 1
		for j := i + 1; j < len(ids) && ids[j] == b; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(b))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeRLE(b64 string) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []uint16
	for i := 0; i < len(raw); {
		b, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if b > 0xFFFF {
			return nil, fmt.Errorf("id too large: %d", b)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, uint16(b))
		}
	}
	return out, nil
}

// EncodeVisibility packs the world's visibility flags for persistence.
func (w *World) EncodeVisibility() string {
	ids := make([]uint16, 0, w.width*w.height)
	for _, cell := range w.cells.Cells() {
		if cell.Visible {
			ids = append(ids, 1)
		} else {
			ids = append(ids, 0)
		}
	}
	return EncodeRLE(ids)
}

// DecodeVisibility restores visibility flags from EncodeVisibility output.
func (w *World) DecodeVisibility(b64 string) error {
	ids, err := DecodeRLE(b64)
	if err != nil {
		return err
	}
	cells := w.cells.Cells()
	if len(ids) != len(cells) {
		return fmt.Errorf("visibility length %d does not match %d cells", len(ids), len(cells))
	}
	for i := range cells {
		cells[i].Visible = ids[i] == 1
	}
	return nil
}
