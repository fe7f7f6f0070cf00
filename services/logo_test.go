package services

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 44, G: 82, B: 130, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDetectImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{"png", testPNG(t, 4, 4), "image/png", false},
		{"jpeg", testJPEG(t, 4, 4), "image/jpeg", false},
		{"text", []byte("hello, this is not an image"), "", true},
		{"pdf", []byte("%PDF-1.4\n%âãÏÓ\n"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectImage(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrNotAnImage) {
					t.Fatalf("DetectImage() error = %v, want ErrNotAnImage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectImage() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeLogo_FitsBox(t *testing.T) {
	out, err := NormalizeLogo(bytes.NewReader(testJPEG(t, 1200, 1200)))
	if err != nil {
		t.Fatalf("NormalizeLogo() error = %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode normalized logo: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != MaxLogoHeight || b.Dy() != MaxLogoHeight {
		t.Errorf("normalized size = %dx%d, want %dx%d", b.Dx(), b.Dy(), MaxLogoHeight, MaxLogoHeight)
	}
	if mt, _ := DetectImage(out); mt != "image/png" {
		t.Errorf("normalized logo type = %q, want image/png", mt)
	}
}

func TestNormalizeLogo_KeepsSmallImages(t *testing.T) {
	out, err := NormalizeLogo(bytes.NewReader(testPNG(t, 120, 60)))
	if err != nil {
		t.Fatalf("NormalizeLogo() error = %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 60 {
		t.Errorf("size = %v, want 120x60", img.Bounds())
	}
}

func TestNormalizeLogo_RejectsGarbage(t *testing.T) {
	if _, err := NormalizeLogo(strings.NewReader("not an image")); err == nil {
		t.Fatal("expected error for non-image input")
	}
}

func TestLogoDataURI(t *testing.T) {
	if LogoDataURI(nil) != "" {
		t.Error("expected empty URI for missing logo")
	}
	if !strings.HasPrefix(LogoDataURI(testPNG(t, 2, 2)), "data:image/png;base64,") {
		t.Error("expected PNG data URI")
	}
}
