package images

import (
	"bytes"
	"encoding/base64"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadBytes caps the decoded payload size.
	MaxUploadBytes = 4608 * 1024 // 4.5 MB

	maxDimension = 1200
	jpegQuality  = 80
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeName strips every character outside [a-zA-Z0-9._-] and any leading
// dots, so a stored name can never escape the storage root.
func SanitizeName(name string) string {
	return strings.TrimLeft(unsafeChars.ReplaceAllString(name, ""), ".")
}

// DecodePayload decodes a base64 upload body, accepting both the embedded
// "data:image/png;base64,..." form and bare base64.
func DecodePayload(data string) ([]byte, error) {
	if i := strings.Index(data, ","); i >= 0 {
		data = data[i+1:]
	}
	return base64.StdEncoding.DecodeString(data)
}

// Optimize resizes the image to fit a 1200px bounding box and re-encodes it
// in the format implied by ext. Payloads that are not decodable images pass
// through unchanged.
func Optimize(data []byte, ext string) ([]byte, error) {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return data, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, nil
	}
	img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func extOf(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
