package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink saves files into a local directory
type FileSink struct {
	Dir string
}

// Save writes data to Dir/name, creating Dir when needed
func (s FileSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
