// Package storage keeps uploaded résumés and generated documents in an
// S3-compatible object store (MinIO, AWS S3 or Cloudflare R2).
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Store writes objects and returns a location string for them.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Backend names accepted by Open.
const (
	BackendMinio = "minio"
	BackendS3    = "s3"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
	// PathStyle forces path-style S3 addressing, needed by most
	// self-hosted S3 endpoints.
	PathStyle bool `json:"path_style" yaml:"path_style"`
}

// Open builds the configured backend. An empty backend returns (nil, nil).
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "":
		return nil, nil
	case BackendMinio:
		return NewMinioStore(ctx, cfg)
	case BackendS3, "r2":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// ObjectKey returns "analyses/<id>/<name>" with name reduced to its base.
func ObjectKey(analysisID, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return path.Join("analyses", analysisID, base)
}

// ContentType maps a file name to the MIME type stored with the object.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".tex":
		return "application/x-tex"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
