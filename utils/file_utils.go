package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum upload size (5MB)
	maxFileSize = 5 * 1024 * 1024
	// Carousel thumbnail width in pixels
	thumbnailWidth = 480
)

// Allowed image extensions
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// InitializeStorage creates the directories uploaded files are served from
func InitializeStorage() error {
	dirs := []string{
		uploadBaseDir,
		filepath.Join(uploadBaseDir, "carousel"),
		filepath.Join(uploadBaseDir, "thumbnails"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

// ValidateImageUpload checks extension and size limits before a file is saved
func ValidateImageUpload(file *multipart.FileHeader) error {
	if file.Size > maxFileSize {
		return fmt.Errorf("file too large (max %d bytes)", maxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("unsupported image format. Allowed formats: jpg, jpeg, png, gif, webp")
	}
	return nil
}

// SaveCarouselImage stores an uploaded slide image under a uuid filename
// and writes a resized thumbnail next to it. Returns the public URLs of
// the image and the thumbnail.
func SaveCarouselImage(file *multipart.FileHeader) (string, string, error) {
	if err := ValidateImageUpload(file); err != nil {
		return "", "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == ".webp" {
		// imaging has no webp encoder; re-encode as jpeg
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext

	imagePath := filepath.Join(uploadBaseDir, "carousel", filename)
	if err := imaging.Save(img, imagePath); err != nil {
		return "", "", fmt.Errorf("failed to save image: %v", err)
	}

	// Width-bound thumbnail, height follows the aspect ratio
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", filename)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		os.Remove(imagePath)
		return "", "", fmt.Errorf("failed to save thumbnail: %v", err)
	}

	return baseURL + "/carousel/" + filename, baseURL + "/thumbnails/" + filename, nil
}

// DeleteUploadedFile removes a previously saved upload given its public
// URL. Missing files are not an error.
func DeleteUploadedFile(publicURL string) error {
	if !strings.HasPrefix(publicURL, baseURL+"/") {
		return nil
	}
	rel := strings.TrimPrefix(publicURL, baseURL+"/")
	// Guard against path traversal in stored URLs
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(uploadBaseDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
