// Package files derives file metadata from storage paths.
// Binary storage itself is handled by an external service; this package only
// records what was uploaded.
package files

import (
	"errors"
	"strings"
)

// File type classifications stored on file rows
const (
	TypeImage = "image"
	TypeVideo = "video"
	TypeOther = "other"
)

var (
	// ErrInvalidFilePath is returned for paths with no name or no extension
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrFileAlreadyExists is returned when a file row with the same storage
	// path already exists
	ErrFileAlreadyExists = errors.New("file already exists")
)

// Info is the metadata derived from a storage path
type Info struct {
	OriginalName string
	Extension    string
	FileType     string
}

// ParseInfo derives the original name, extension, and coarse type from a
// storage path. The name is the segment after the last slash; the extension
// is the segment after its last dot.
func ParseInfo(path string) (*Info, error) {
	if path == "" {
		return nil, ErrInvalidFilePath
	}

	name := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}

	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return nil, ErrInvalidFilePath
	}

	ext := strings.ToLower(name[dot+1:])
	return &Info{
		OriginalName: name[:dot],
		Extension:    ext,
		FileType:     typeByExtension(ext),
	}, nil
}

func typeByExtension(ext string) string {
	switch ext {
	case "jpeg", "jpg", "png":
		return TypeImage
	case "mp4", "mov":
		return TypeVideo
	default:
		return TypeOther
	}
}
