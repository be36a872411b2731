// Package optimizer normalizes uploaded photos before they are persisted:
// oversized images are scaled down and re-encoded so a single phone shot
// cannot blow up the local store or the cloud bill.
package optimizer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"
)

const (
	DefaultMaxDimension = 2048
	DefaultMaxBytes     = 10 << 20
)

// The JPEG quality ladder tried in order after scaling. The first encoding
// that fits the byte bound wins.
var defaultQualities = []int{80, 60, 40, 20}

// ErrInvalidImage means the input bytes are not a decodable image. There is
// no record to create in that case.
var ErrInvalidImage = errors.New("not a decodable image")

// Result is the outcome of Normalize. Quality is the JPEG quality the data
// was re-encoded at, or 0 when the input was already within bounds and
// passed through untouched. SizeExceeded reports that even the lowest rung
// of the quality ladder missed the byte bound; the data is still usable and
// callers treat it as an advisory.
type Result struct {
	Data         []byte
	Width        int
	Height       int
	Quality      int
	SizeExceeded bool
}

type Optimizer struct {
	maxDimension int
	maxBytes     int64
	qualities    []int
}

// New returns an optimizer enforcing the given pixel and byte bounds.
// Non-positive bounds fall back to the defaults.
func New(maxDimension int, maxBytes int64) *Optimizer {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Optimizer{
		maxDimension: maxDimension,
		maxBytes:     maxBytes,
		qualities:    defaultQualities,
	}
}

// Normalize returns data unchanged when it is within both bounds. Otherwise
// the image is scaled so its longest edge equals the dimension bound (aspect
// preserved) and re-encoded as JPEG down the quality ladder until it fits.
func (o *Optimizer) Normalize(data []byte) (*Result, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if cfg.Width <= o.maxDimension && cfg.Height <= o.maxDimension && int64(len(data)) <= o.maxBytes {
		return &Result{Data: data, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	img = o.scaleDown(img)
	b := img.Bounds()

	var buf bytes.Buffer
	quality := 0
	for _, q := range o.qualities {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		quality = q
		if int64(buf.Len()) <= o.maxBytes {
			return &Result{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy(), Quality: q}, nil
		}
	}

	return &Result{
		Data:         buf.Bytes(),
		Width:        b.Dx(),
		Height:       b.Dy(),
		Quality:      quality,
		SizeExceeded: true,
	}, nil
}

// scaleDown resizes src so its longest edge equals the dimension bound.
// Images already within the bound come back untouched.
func (o *Optimizer) scaleDown(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := max(w, h)
	if longest <= o.maxDimension {
		return src
	}

	ratio := float64(o.maxDimension) / float64(longest)
	nw := max(int(math.Round(float64(w)*ratio)), 1)
	nh := max(int(math.Round(float64(h)*ratio)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
