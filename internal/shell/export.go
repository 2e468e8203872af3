package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// renderScript lays out the audio script: a header with the configured
// sentence pause, then a block per page with one spoken unit per line.
// Silent pages keep their block so page numbering survives downstream.
func renderScript(script [][]string, pause float64) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# lantern audio script\n# pause: %.2fs\n", pause)
	for i, units := range script {
		fmt.Fprintf(&b, "\n## page %d\n", i+1)
		for _, u := range units {
			b.WriteString(u)
			b.WriteByte('\n')
		}
	}
	return b.Bytes()
}

// ExportScript writes the audio script to path. A .zst extension
// compresses the script with zstd.
func ExportScript(path string, script [][]string, pause float64) error {
	data := renderScript(script, pause)

	if filepath.Ext(path) == ".zst" {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("zstd encoder: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}
