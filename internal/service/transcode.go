// Package service contains the injected domain services behind the
// HTTP handlers and the background sweeps of the application
package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// ErrDecode is returned when uploaded bytes aren't a decodable raster
// image.
var ErrDecode = errors.New("file is not a decodable image")

// Transcoder turns raw uploaded bytes into the two stored renditions: a
// size capped display image and a fixed square thumbnail. Output is
// always JPEG no matter what was uploaded.
type Transcoder struct {
	DisplayMaxPx   int
	DisplayQuality int
	ThumbSize      int
	ThumbQuality   int
}

func NewTranscoder() *Transcoder {
	return &Transcoder{
		DisplayMaxPx:   2000,
		DisplayQuality: 80,
		ThumbSize:      200,
		ThumbQuality:   70,
	}
}

// TranscodeResult carries both encoded renditions plus the pixel size
// of the decoded source, which is what gets recorded as the photo's
// dimensions.
type TranscodeResult struct {
	Display   []byte
	Thumbnail []byte
	Width     int
	Height    int
}

// Transcode decodes raw and produces the display rendition (fits
// within DisplayMaxPx on both axes, never upscaled) and the thumbnail
// (center anchored crop filling ThumbSize x ThumbSize).
func (t *Transcoder) Transcode(raw []byte) (*TranscodeResult, error) {
	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrDecode
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	display := src
	if w > t.DisplayMaxPx || h > t.DisplayMaxPx {
		display = imaging.Fit(src, t.DisplayMaxPx, t.DisplayMaxPx, imaging.Lanczos)
	}

	thumb := imaging.Fill(src, t.ThumbSize, t.ThumbSize, imaging.Center, imaging.Lanczos)

	var displayBuf bytes.Buffer
	if err := imaging.Encode(&displayBuf, display, imaging.JPEG, imaging.JPEGQuality(t.DisplayQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode display image, %w", err)
	}

	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG, imaging.JPEGQuality(t.ThumbQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail, %w", err)
	}

	return &TranscodeResult{
		Display:   displayBuf.Bytes(),
		Thumbnail: thumbBuf.Bytes(),
		Width:     w,
		Height:    h,
	}, nil
}
