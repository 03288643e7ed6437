package imagestore

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"metromobiles/internal/pkg/config"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/usecase/commands"
)

var (
	errOpenUpload  = errs.New("failed to open uploaded file")
	errWriteUpload = errs.New("failed to write uploaded file")
)

// DiskStore writes product images under a single directory with generated
// names, so concurrent uploads of identically named files never collide.
type DiskStore struct {
	dir string
}

func NewDiskStore(cfg config.ImageConfig) (commands.ImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "failed to create image directory")
	}
	return &DiskStore{dir: cfg.Dir}, nil
}

func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", errs.Mark(err, errOpenUpload)
	}
	defer src.Close()

	name := generateName(file.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errs.Mark(err, errWriteUpload)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", errs.Mark(err, errWriteUpload)
	}
	return "/" + filepath.ToSlash(path), nil
}

func (s *DiskStore) Remove(path string) error {
	// Only paths inside the store directory are removable.
	rel := strings.TrimPrefix(path, "/")
	if !strings.HasPrefix(filepath.ToSlash(rel), filepath.ToSlash(s.dir)+"/") {
		return nil
	}
	if err := os.Remove(rel); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(err, "failed to remove image")
	}
	return nil
}

func generateName(original string) string {
	var buf [6]byte
	_, _ = rand.Read(buf[:])
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), hex.EncodeToString(buf[:]), ext)
}
