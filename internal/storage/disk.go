// Package storage stores uploaded images on the local filesystem or an
// S3-compatible bucket and hands back their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"tailorshop/internal/config"
)

// Disk is the object storage driver interface.
type Disk interface {
	// Put writes r to key. contentType may be empty.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for key.
	URL(key string) string
}

// New builds the disk selected by STORAGE_DISK.
func New(ctx context.Context, cfg config.StorageConfig) (Disk, error) {
	switch cfg.Disk {
	case "", "local":
		return NewLocalDisk(cfg.LocalRoot, cfg.URL), nil
	case "s3":
		return NewS3Disk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown disk %q", cfg.Disk)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey joins dir with a timestamped, sanitised file name, e.g.
// services/1700000000_kurta.jpg.
func ObjectKey(dir string, unix int64, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	return path.Join(dir, fmt.Sprintf("%d_%s", unix, name))
}
