package intake

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileAttachment is an Attachment backed by a local file.
type FileAttachment struct {
	path string
	size int64
}

// OpenFile stats path and wraps it as an Attachment. Directories are
// rejected.
func OpenFile(path string) (*FileAttachment, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	return &FileAttachment{path: path, size: fi.Size()}, nil
}

func (f *FileAttachment) Filename() string {
	return filepath.Base(f.path)
}

func (f *FileAttachment) Size() int64 {
	return f.size
}

func (f *FileAttachment) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(f.path)
}
