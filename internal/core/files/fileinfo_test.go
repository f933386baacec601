package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Info
	}{
		{
			name: "nested image path",
			path: "uploads/42/sunset.jpg",
			want: Info{OriginalName: "sunset", Extension: "jpg", FileType: TypeImage},
		},
		{
			name: "bare file name",
			path: "marker.png",
			want: Info{OriginalName: "marker", Extension: "png", FileType: TypeImage},
		},
		{
			name: "video",
			path: "clips/trip.mp4",
			want: Info{OriginalName: "trip", Extension: "mp4", FileType: TypeVideo},
		},
		{
			name: "unknown extension",
			path: "docs/readme.pdf",
			want: Info{OriginalName: "readme", Extension: "pdf", FileType: TypeOther},
		},
		{
			name: "uppercase extension normalized",
			path: "uploads/photo.JPG",
			want: Info{OriginalName: "photo", Extension: "jpg", FileType: TypeImage},
		},
		{
			name: "multi-dot name keeps prefix",
			path: "uploads/photo.final.jpeg",
			want: Info{OriginalName: "photo.final", Extension: "jpeg", FileType: TypeImage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseInfo(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *info)
		})
	}
}

func TestParseInfoRejectsInvalidPaths(t *testing.T) {
	for _, path := range []string{
		"",
		"uploads/42/noext",
		"uploads/42/.hidden",
		"uploads/42/trailingdot.",
	} {
		_, err := ParseInfo(path)
		assert.ErrorIs(t, err, ErrInvalidFilePath, "path %q", path)
	}
}
