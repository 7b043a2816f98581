package storage

import (
	"fmt"

	"github.com/quodex/invizo/config"
	"github.com/quodex/invizo/pkg/logger"
)

// Connect builds the disk selected by STORAGE_DISK. The local disk is the
// fallback whenever the S3 disk cannot be configured, so the server still
// boots in development without cloud credentials.
func Connect() Disk {
	local := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if config.StorageDefault() != "s3" {
		return local
	}

	d, err := NewS3Disk()
	if err != nil {
		logger.Warn("storage: s3 disk unavailable, using local", "error", err)
		return local
	}
	return d
}

// KeyFromURL maps a stored public image URL back to the disk path it was
// uploaded under. Images live flat under the uploads/ prefix, so the last
// URL segment is the object name.
func KeyFromURL(imgURL string) string {
	idx := len(imgURL) - 1
	for idx >= 0 && imgURL[idx] != '/' {
		idx--
	}
	return fmt.Sprintf("uploads/%s", imgURL[idx+1:])
}
