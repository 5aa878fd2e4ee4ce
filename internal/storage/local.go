package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// localStorage writes objects as plain files in a single directory.
type localStorage struct {
	dir string
}

// NewLocal returns a Storage rooted at dir. The directory is created lazily
// by Put, so it may not exist yet.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	return &localStorage{dir: dir}, nil
}

func (l *localStorage) path(key string) string {
	return filepath.Join(l.dir, key)
}

// Put creates the upload directory if needed and replaces the file at key.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ValidateKey(key); err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("create upload dir: %w", err)
	}

	p := l.path(key)
	f, err := os.Create(p)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create file: %w", err)
	}
	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return ObjectInfo{}, fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("close file: %w", err)
	}

	st, err := os.Stat(p)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Path:         filepath.ToSlash(p),
		Size:         n,
		ContentType:  opt.ContentType,
		LastModified: st.ModTime(),
	}, nil
}

// Get opens the file stored under key.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := ValidateKey(key); err != nil {
		return nil, ObjectInfo{}, err
	}
	p := l.path(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, ErrNotExist
		}
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	if st.IsDir() {
		f.Close()
		return nil, ObjectInfo{}, ErrNotExist
	}
	return f, ObjectInfo{
		Key:          key,
		Path:         filepath.ToSlash(p),
		Size:         st.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(key)),
		LastModified: st.ModTime(),
	}, nil
}
