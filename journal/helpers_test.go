package journal

import (
	"bytes"
	"io"

	"github.com/rustyeddy/tradeboard/config"
)

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

func configFor(typ, path string) config.ExportConfig {
	return config.ExportConfig{Type: typ, Path: path}
}
