package media

import (
	"bytes"
	"encoding/json"
	"image"
	"math"
	"os/exec"
	"strconv"
	"time"

	"fdb/pkg/models"
)

// probeFormat represents the "format" object of 'ffprobe -of json'.
type probeFormat struct {
	Duration string `json:"duration"`
	Tags     struct {
		CreationTime string `json:"creation_time"`
	} `json:"tags"`
}

// probeStream represents one entry of the "streams" array.
type probeStream struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

// identifyAV probes a video or audio file with ffprobe and grabs the
// first frame with ffmpeg for the thumbnail. Both tools are optional;
// whatever cannot be obtained is left empty.
func identifyAV(path string, thumbSize int) Info {
	var info Info

	raw, err := exec.Command(
		"ffprobe", "-of", "json", "-show_format", "-show_streams", path,
	).Output()
	if err == nil {
		var probe probeOutput
		if err := json.Unmarshal(raw, &probe); err == nil {
			duration := 0
			if probe.Format.Duration != "" {
				if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
					duration = int(math.Floor(d + 0.5))
				}
			}
			info.Attrs = append(info.Attrs, models.Attr{Name: "duration", Value: strconv.Itoa(duration)})

			width, height := 0, 0
			for _, s := range probe.Streams {
				if s.Width > 0 {
					width = s.Width
				}
				if s.Height > 0 {
					height = s.Height
				}
			}
			info.Attrs = append(info.Attrs,
				models.Attr{Name: "width", Value: strconv.Itoa(width)},
				models.Attr{Name: "height", Value: strconv.Itoa(height)},
			)

			if ct := probe.Format.Tags.CreationTime; len(ct) >= 19 {
				if t, err := time.Parse("2006-01-02T15:04:05", ct[:19]); err == nil {
					info.Timestamp = t.Format(models.TimeLayout)
				}
			}
		}
	}

	frame, err := exec.Command(
		"ffmpeg", "-y", "-ss", "0",
		"-i", path, "-f", "image2", "-vframes", "1", "-",
	).Output()
	if err == nil && len(frame) > 0 {
		if img, _, err := image.Decode(bytes.NewReader(frame)); err == nil {
			info.Thumbnail = encodeThumbnail(img, thumbSize)
		}
	}

	return info
}
