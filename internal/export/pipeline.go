package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"math"
	"strings"
	"time"
)

// 像素到毫米的换算系数（96dpi）。
const pxToMM = 0.264583

// A4 页面尺寸，单位毫米。
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

var (
	// ErrNoSurface 表示渲染页面里找不到简历画布元素。
	ErrNoSurface = errors.New("resume surface not found")
	// ErrEmptyCapture 表示截图尺寸为零，没有可导出的内容。
	ErrEmptyCapture = errors.New("captured surface has zero size")
)

// Placement 是栅格图在 A4 页面上的落位，单位毫米。
type Placement struct {
	WidthMM  float64
	HeightMM float64
	XMM      float64
	YMM      float64
}

// Raster 是画布截图及其像素尺寸。
type Raster struct {
	Data     []byte
	WidthPx  int
	HeightPx int
}

// FitToA4 把像素尺寸的截图等比缩放进一张 A4 页面并水平居中。
// 缩放系数取宽高两个方向的较小值，图像永不裁切。
func FitToA4(widthPx, heightPx int) (Placement, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return Placement{}, ErrEmptyCapture
	}

	widthMM := float64(widthPx) * pxToMM
	heightMM := float64(heightPx) * pxToMM
	ratio := math.Min(A4WidthMM/widthMM, A4HeightMM/heightMM)

	scaledW := widthMM * ratio
	scaledH := heightMM * ratio
	return Placement{
		WidthMM:  scaledW,
		HeightMM: scaledH,
		XMM:      (A4WidthMM - scaledW) / 2,
		YMM:      math.Max(0, (A4HeightMM-scaledH)/2),
	}, nil
}

// decodeRaster 读取 PNG 截图的像素尺寸，零尺寸视为空捕获。
func decodeRaster(data []byte) (Raster, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Raster{}, fmt.Errorf("decode screenshot: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Raster{}, ErrEmptyCapture
	}
	return Raster{Data: data, WidthPx: cfg.Width, HeightPx: cfg.Height}, nil
}

// SanitizeBaseName 把标题收敛成对象存储友好的文件名主干：
// 小写，字母数字以外一律替换为下划线，空标题退到 resume。
func SanitizeBaseName(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if strings.Trim(b.String(), "_") == "" {
		return "resume"
	}
	return b.String()
}

// FileName 生成带时间戳的导出文件名。
func FileName(title string, now time.Time) string {
	return fmt.Sprintf("%s_%d.pdf", SanitizeBaseName(title), now.UnixMilli())
}

// ObjectKey 生成制品在对象存储里的键：{用户}/{简历}/{文件名}。
func ObjectKey(ownerID, resumeID uint, fileName string) string {
	return fmt.Sprintf("%d/%d/%s", ownerID, resumeID, fileName)
}
