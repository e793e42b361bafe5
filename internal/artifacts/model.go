package artifacts

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// loadModel reads the xz-compressed model artifact. The payload is opaque; decompressing it
// fully is how a truncated or corrupt file gets caught at startup.
func loadModel(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, malformed(path, err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, malformed(path, fmt.Errorf("xz: %w", err))
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, malformed(path, fmt.Errorf("xz: %w", err))
	}
	return buf.Bytes(), nil
}
