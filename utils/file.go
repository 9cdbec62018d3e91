package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/config"
)

func isImageExtension(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

// UploadFile stores an uploaded image under the configured upload
// directory and returns its path relative to that directory.
func UploadFile(c *gin.Context, fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if max := config.AppConfig.MaxUploadSize; fileHeader.Size > max {
		return "", fmt.Errorf("file exceeds the %d byte upload limit", max)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !isImageExtension(ext) {
		return "", fmt.Errorf("unsupported file type %q, only images are allowed", ext)
	}

	dir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return filepath.Join(subDir, name), nil
}

// DeleteFile removes a previously uploaded file. A missing file is not
// an error, the caller only cares that it is gone.
func DeleteFile(relPath string) error {
	err := os.Remove(filepath.Join(config.AppConfig.UploadDir, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
