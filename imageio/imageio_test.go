package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(10 * x), uint8(20 * y), 200, 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	specs := []struct {
		path   string
		expFmt Format
	}{
		{"frame.png", PNG},
		{"out/frame.PPM", PPM},
		{"frame.bmp", BMP},
		{"frame.tif", TIFF},
		{"frame.tiff", TIFF},
		{"frame.tga", TGA},
		{"s3://renders/frames/frame.webp", WEBP},
	}

	for specIndex, spec := range specs {
		format, err := FormatFromPath(spec.path)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", specIndex, err)
		}
		if format != spec.expFmt {
			t.Fatalf("[spec %d] expected format %s; got %s", specIndex, spec.expFmt, format)
		}
	}

	_, err := FormatFromPath("frame.jpg")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected error %v; got %v", ErrUnsupportedFormat, err)
	}
}

func TestEncodePPM(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 1, 255})
	img.SetRGBA(1, 0, color.RGBA{12, 34, 56, 255})

	var buf bytes.Buffer
	if err := Encode(&buf, img, PPM); err != nil {
		t.Fatal(err)
	}

	expOut := "P3\n2 1\n255\n255 0 1\n12 34 56\n"
	if buf.String() != expOut {
		t.Fatalf("expected ppm output:\n%s\ngot:\n%s", expOut, buf.String())
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	img := testImage(8, 4)
	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		PNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		BMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		TIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(bytes.NewReader(b.Bytes())) },
		TGA:  func(b *bytes.Buffer) (image.Image, error) { return tga.Decode(b) },
	}

	for format, decode := range decoders {
		var buf bytes.Buffer
		if err := Encode(&buf, img, format); err != nil {
			t.Fatalf("[%s] unexpected error: %v", format, err)
		}

		out, err := decode(&buf)
		if err != nil {
			t.Fatalf("[%s] decode error: %v", format, err)
		}
		if out.Bounds() != img.Bounds() {
			t.Fatalf("[%s] expected bounds %v; got %v", format, img.Bounds(), out.Bounds())
		}

		r, g, b, _ := out.At(3, 2).RGBA()
		if r>>8 != 30 || g>>8 != 40 || b>>8 != 200 {
			t.Fatalf("[%s] expected pixel (3, 2) to be (30, 40, 200); got (%d, %d, %d)", format, r>>8, g>>8, b>>8)
		}
	}
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(8, 4), WEBP); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Fatal("expected output to start with a RIFF/WEBP header")
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(1, 1), Format(255)); err != ErrUnsupportedFormat {
		t.Fatalf("expected error %v; got %v", ErrUnsupportedFormat, err)
	}
}

func TestThumbnail(t *testing.T) {
	thumb := Thumbnail(testImage(200, 100), 64, 64)
	if thumb.Bounds().Dx() != 64 || thumb.Bounds().Dy() != 32 {
		t.Fatalf("expected thumbnail to be 64x32; got %dx%d", thumb.Bounds().Dx(), thumb.Bounds().Dy())
	}

	small := testImage(10, 5)
	if out := Thumbnail(small, 64, 64); out.Bounds() != small.Bounds() {
		t.Fatalf("expected small image to remain %v; got %v", small.Bounds(), out.Bounds())
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize("160x90")
	if err != nil {
		t.Fatal(err)
	}
	if w != 160 || h != 90 {
		t.Fatalf("expected 160x90; got %dx%d", w, h)
	}

	for _, bad := range []string{"", "160", "x90", "0x90", "axb"} {
		if _, _, err = ParseSize(bad); err == nil {
			t.Fatalf("expected ParseSize(%q) to fail", bad)
		}
	}
}

func TestMimeType(t *testing.T) {
	if PNG.MimeType() != "image/png" || WEBP.MimeType() != "image/webp" {
		t.Fatalf("unexpected mime types %s, %s", PNG.MimeType(), WEBP.MimeType())
	}
	if Format(255).MimeType() != "application/octet-stream" {
		t.Fatalf("expected unknown format to map to application/octet-stream; got %s", Format(255).MimeType())
	}
}
