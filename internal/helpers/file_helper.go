package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Media store contract: upload a file, get back a servable path. Local disk
// today; the contract stays if storage moves behind a CDN.

const bannerMaxSizeBytes = 5 * 1024 * 1024

var bannerMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

// UploadBanner validates and stores an event banner image, returning the
// stored path. Content type is sniffed from the payload, not trusted from
// the filename.
func UploadBanner(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > bannerMaxSizeBytes {
		return "", fmt.Errorf("banner exceeds maximum size of %d MB", bannerMaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil {
		return "", err
	}
	mimeType := http.DetectContentType(buffer)

	allowed := false
	for _, allowedType := range bannerMimeTypes {
		if mimeType == allowedType {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("invalid banner type %s, allowed: %v", mimeType, bannerMimeTypes)
	}

	uploadPath := filepath.Join("./uploads", "event_banners")
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	fullPath := filepath.Join(uploadPath, filename)
	if err := c.SaveUploadedFile(fileHeader, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}
