package export

import (
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"resumeforge/internal/render"
)

// Generator 在无头浏览器里完成简历画布的截图与 A4 合成。
type Generator struct {
	// SettleDelay 是样式中和后的静置时间，等浏览器把布局刷新完。
	SettleDelay time.Duration
}

// NewGenerator 构造导出生成器。
func NewGenerator(settleDelay time.Duration) *Generator {
	return &Generator{SettleDelay: settleDelay}
}

// GeneratePDF 把渲染好的简历 HTML 变成单页 A4 PDF：
// 截取画布元素为 PNG，等比缩放居中落位，再打印成 PDF 字节。
func (g *Generator) GeneratePDF(htmlContent string) ([]byte, error) {
	launch := launcher.New().
		Headless(true).
		NoSandbox(true)

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	raster, err := g.captureSurface(browser, htmlContent)
	if err != nil {
		return nil, err
	}

	placement, err := FitToA4(raster.WidthPx, raster.HeightPx)
	if err != nil {
		return nil, err
	}

	return composePDF(browser, raster, placement)
}

// captureSurface 载入 HTML、定位画布元素并截图。
// 截图前中和预览态的缩放样式，截图后原样还原，捕获不改变文档状态。
func (g *Generator) captureSurface(browser *rod.Browser, htmlContent string) (Raster, error) {
	page, err := browser.Timeout(30 * time.Second).Page(proto.TargetCreateTarget{})
	if err != nil {
		return Raster{}, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(30 * time.Second)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return Raster{}, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return Raster{}, fmt.Errorf("wait load: %w", err)
	}

	element, err := page.Timeout(5 * time.Second).Element("#" + render.SurfaceElementID)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: %v", ErrNoSurface, err)
	}

	if _, err := element.Eval(`() => {
	  this.dataset.prevTransform = this.style.transform || '';
	  this.dataset.prevWidth = this.style.width || '';
	  this.style.transform = 'none';
	  this.style.width = '210mm';
	}`); err != nil {
		return Raster{}, fmt.Errorf("neutralize preview styles: %w", err)
	}

	if g.SettleDelay > 0 {
		time.Sleep(g.SettleDelay)
	}

	data, err := element.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return Raster{}, fmt.Errorf("capture surface: %w", err)
	}

	if _, err := element.Eval(`() => {
	  this.style.transform = this.dataset.prevTransform;
	  this.style.width = this.dataset.prevWidth;
	  delete this.dataset.prevTransform;
	  delete this.dataset.prevWidth;
	}`); err != nil {
		return Raster{}, fmt.Errorf("restore preview styles: %w", err)
	}

	return decodeRaster(data)
}

// composePDF 把截图按落位嵌进一张 A4 页并打印成 PDF。
func composePDF(browser *rod.Browser, raster Raster, placement Placement) ([]byte, error) {
	page, err := browser.Timeout(30 * time.Second).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create compose page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(30 * time.Second)
	if err := page.SetDocumentContent(composePage(raster, placement)); err != nil {
		return nil, fmt.Errorf("set compose content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait compose load: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      float64Ptr(8.27),
		PaperHeight:     float64Ptr(11.69),
		MarginTop:       float64Ptr(0),
		MarginBottom:    float64Ptr(0),
		MarginLeft:      float64Ptr(0),
		MarginRight:     float64Ptr(0),
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}

func composePage(raster Raster, placement Placement) string {
	encoded := base64.StdEncoding.EncodeToString(raster.Data)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><style>
  @page { size: A4; margin: 0; }
  html, body { margin: 0; padding: 0; background: white; }
</style></head>
<body>
  <img src="data:image/png;base64,%s"
       style="position:absolute;left:%.3fmm;top:%.3fmm;width:%.3fmm;height:%.3fmm">
</body>
</html>`, encoded, placement.XMM, placement.YMM, placement.WidthMM, placement.HeightMM)
}

func float64Ptr(value float64) *float64 {
	return &value
}
