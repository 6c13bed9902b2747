// Package media identifies ingested files and produces thumbnails.
//
// Images are handled in-process (stdlib decoders plus EXIF); video and
// audio are probed through the external ffprobe/ffmpeg tools when they
// are installed. Identification is best-effort: a file that cannot be
// decoded simply yields no metadata, never an error.
package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"

	"fdb/pkg/models"
)

// DefaultThumbSize is the bounding box for generated thumbnails.
const DefaultThumbSize = 128

// Info is the metadata extracted from a single file.
type Info struct {
	// Timestamp in models.TimeLayout, empty when the file carries none.
	Timestamp string
	Attrs     []models.Attr
	// Thumbnail is JPEG bytes, nil when none could be produced.
	Thumbnail []byte
}

// DetectType sniffs the MIME type of the file at path from its
// content. Returns "" when the file cannot be read.
func DetectType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	// Strip parameters such as "; charset=utf-8".
	t := mtype.String()
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// Identify extracts metadata and a thumbnail for the file at path
// based on its MIME type. Unknown types yield an empty Info.
func Identify(path, fileType string, thumbSize int) Info {
	if thumbSize <= 0 {
		thumbSize = DefaultThumbSize
	}
	switch {
	case strings.HasPrefix(fileType, "image/"):
		return identifyImage(path, thumbSize)
	case strings.HasPrefix(fileType, "video/"), strings.HasPrefix(fileType, "audio/"):
		return identifyAV(path, thumbSize)
	}
	return Info{}
}

// encodeThumbnail shrinks img to fit within size x size and returns it
// as JPEG bytes. Images already small enough are re-encoded as is.
func encodeThumbnail(img image.Image, size int) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, fit(img, size), nil); err != nil {
		return nil
	}
	return buf.Bytes()
}
