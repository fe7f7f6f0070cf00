package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// Logos are scaled down to fit this box before they are embedded.
const (
	MaxLogoWidth  = 600
	MaxLogoHeight = 400
	MaxLogoBytes  = 5 << 20
)

var logoMimeTypes = []string{"image/png", "image/jpeg", "image/gif"}

// LogoMimeTypes lists the accepted upload types.
func LogoMimeTypes() []string {
	return append([]string(nil), logoMimeTypes...)
}

// DetectImage sniffs data and returns its MIME type, or ErrNotAnImage.
func DetectImage(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	for _, allowed := range logoMimeTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return "", ErrNotAnImage
}

// NormalizeLogo decodes an uploaded logo, fits it into the logo box and
// re-encodes it as PNG, which every renderer accepts.
func NormalizeLogo(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	fitted := imaging.Fit(img, MaxLogoWidth, MaxLogoHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

// LogoDataURI embeds a PNG logo for HTML output.
func LogoDataURI(png []byte) string {
	if len(png) == 0 {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
