package media

import (
	"image"
	"os"
	"strconv"

	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"

	"fdb/pkg/models"
)

func identifyImage(path string, thumbSize int) Info {
	var info Info

	fp, err := os.Open(path)
	if err != nil {
		return info
	}
	defer fp.Close()

	img, _, err := image.Decode(fp)
	if err != nil {
		return info
	}

	bounds := img.Bounds()
	info.Attrs = append(info.Attrs,
		models.Attr{Name: "width", Value: strconv.Itoa(bounds.Dx())},
		models.Attr{Name: "height", Value: strconv.Itoa(bounds.Dy())},
	)

	rotation := 0
	if fp2, err := os.Open(path); err == nil {
		if x, err := exif.Decode(fp2); err == nil {
			if tag, err := x.Get(exif.ImageDescription); err == nil {
				if desc, err := tag.StringVal(); err == nil && desc != "" {
					info.Attrs = append(info.Attrs, models.Attr{Name: "description", Value: desc})
				}
			}
			if tag, err := x.Get(exif.Orientation); err == nil {
				if o, err := tag.Int(0); err == nil {
					switch o {
					case 8:
						rotation = 90
					case 3:
						rotation = 180
					case 6:
						rotation = 270
					}
					info.Attrs = append(info.Attrs, models.Attr{Name: "rotation", Value: strconv.Itoa(rotation)})
				}
			}
			if t, err := x.DateTime(); err == nil {
				info.Timestamp = t.Format(models.TimeLayout)
			}
		}
		fp2.Close()
	}

	info.Thumbnail = encodeThumbnail(rotate(img, rotation), thumbSize)
	return info
}

// fit scales img down to fit within a size x size box, preserving the
// aspect ratio. Images that already fit are returned unchanged.
func fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return img
	}

	nw, nh := size, size
	if w > h {
		nh = h * size / w
	} else {
		nw = w * size / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// rotate turns img counter-clockwise by deg (0, 90, 180 or 270),
// undoing the EXIF orientation of the source camera.
func rotate(img image.Image, deg int) image.Image {
	if deg == 0 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	switch deg {
	case 90:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				dst.Set(x, y, img.At(b.Min.X+w-1-y, b.Min.Y+x))
			}
		}
	case 180:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(x, y, img.At(b.Min.X+w-1-x, b.Min.Y+h-1-y))
			}
		}
	case 270:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				dst.Set(x, y, img.At(b.Min.X+y, b.Min.Y+h-1-x))
			}
		}
	default:
		return img
	}
	return dst
}
