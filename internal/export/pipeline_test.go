package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"
)

func TestFitToA4TallCaptureStaysOnPage(t *testing.T) {
	// 2000x2828 像素按 0.264583 换算后高度超出 A4，须按高度方向缩放。
	placement, err := FitToA4(2000, 2828)
	if err != nil {
		t.Fatal(err)
	}

	if placement.HeightMM > A4HeightMM+0.001 {
		t.Fatalf("height %.3fmm exceeds page", placement.HeightMM)
	}
	if placement.WidthMM > A4WidthMM+0.001 {
		t.Fatalf("width %.3fmm exceeds page", placement.WidthMM)
	}

	// 等比：宽高比不变。
	srcRatio := 2000.0 / 2828.0
	gotRatio := placement.WidthMM / placement.HeightMM
	if math.Abs(srcRatio-gotRatio) > 0.001 {
		t.Fatalf("aspect ratio changed: %.4f vs %.4f", srcRatio, gotRatio)
	}

	// 水平居中。
	wantX := (A4WidthMM - placement.WidthMM) / 2
	if math.Abs(placement.XMM-wantX) > 0.001 {
		t.Fatalf("expected centered x %.3f, got %.3f", wantX, placement.XMM)
	}
	if placement.YMM < 0 {
		t.Fatalf("y offset must not be negative, got %.3f", placement.YMM)
	}
}

func TestFitToA4WideCaptureCentersVertically(t *testing.T) {
	placement, err := FitToA4(2000, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if placement.WidthMM > A4WidthMM+0.001 {
		t.Fatalf("width %.3fmm exceeds page", placement.WidthMM)
	}
	wantY := (A4HeightMM - placement.HeightMM) / 2
	if math.Abs(placement.YMM-wantY) > 0.001 {
		t.Fatalf("expected centered y %.3f, got %.3f", wantY, placement.YMM)
	}
}

func TestFitToA4RejectsZeroSize(t *testing.T) {
	if _, err := FitToA4(0, 100); !errors.Is(err, ErrEmptyCapture) {
		t.Fatalf("expected ErrEmptyCapture, got %v", err)
	}
	if _, err := FitToA4(100, 0); !errors.Is(err, ErrEmptyCapture) {
		t.Fatalf("expected ErrEmptyCapture, got %v", err)
	}
}

func TestDecodeRasterReadsDimensions(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 30, 40))); err != nil {
		t.Fatal(err)
	}

	raster, err := decodeRaster(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if raster.WidthPx != 30 || raster.HeightPx != 40 {
		t.Fatalf("expected 30x40, got %dx%d", raster.WidthPx, raster.HeightPx)
	}
}

func TestDecodeRasterRejectsGarbage(t *testing.T) {
	if _, err := decodeRaster([]byte("not a png")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Resume", "my_resume"},
		{"Backend Engineer (2026)", "backend_engineer__2026_"},
		{"简历", "resume"},
		{"   ", "resume"},
		{"abc123", "abc123"},
	}
	for _, tc := range cases {
		if got := SanitizeBaseName(tc.in); got != tc.want {
			t.Errorf("SanitizeBaseName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileNameCarriesTimestamp(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	got := FileName("My Resume", now)
	if got != "my_resume_1700000000000.pdf" {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestObjectKeyLayout(t *testing.T) {
	key := ObjectKey(7, 42, "my_resume_1.pdf")
	if key != "7/42/my_resume_1.pdf" {
		t.Fatalf("unexpected object key %q", key)
	}
	if strings.Count(key, "/") != 2 {
		t.Fatalf("key must have owner/resume/file layout: %q", key)
	}
}

func TestComposePageEmbedsPlacement(t *testing.T) {
	raster := Raster{Data: []byte{1, 2, 3}, WidthPx: 10, HeightPx: 10}
	html := composePage(raster, Placement{WidthMM: 100, HeightMM: 141, XMM: 55, YMM: 78})

	for _, want := range []string{"left:55.000mm", "top:78.000mm", "width:100.000mm", "height:141.000mm", "data:image/png;base64,"} {
		if !strings.Contains(html, want) {
			t.Errorf("compose page missing %q", want)
		}
	}
}

func TestSanitizeBaseNameAllUnderscoresFallsBack(t *testing.T) {
	if got := SanitizeBaseName("!!!"); got != "resume" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
