package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

// Document page geometry, in points.
const (
	pageSize     = 1080
	pageCardW    = 900
	pageCardH    = 1000
	pageCardX    = (pageSize - pageCardW) / 2
	pageCardY    = (pageSize - pageCardH) / 2
	qrSize       = 72
	qrInset      = 8
	jpegQuality  = 92
	qrPixelSize  = 256
	pageBgR      = 0x0d
	pageBgG      = 0x19
	pageBgB      = 0x2f
	cardImageFmt = "JPG"
)

// RenderDocument builds a PDF with one card page per device.
//
// onProgress, if non-nil, is called after each page with (i+1)/n*100, so
// the last call is exactly 100. Any page failure or ctx cancellation aborts
// the whole document and returns nil bytes.
func (r *Renderer) RenderDocument(ctx context.Context, devices []device.Device, onProgress ProgressFunc) (out []byte, err error) {
	start := time.Now()
	defer func() { r.recorder.ObserveExport(FormatDocument, len(devices), time.Since(start), err) }()

	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	ordered := timeline.Sorted(devices, r.opts.DocumentOrder)

	images, err := r.prefetchImages(ctx, ordered)
	if err != nil {
		return nil, err
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageSize, Ht: pageSize},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("My Technology Journey", true)
	pdf.SetCreator("device-timeline", true)

	n := len(ordered)
	for i := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rendering document: %w", err)
		}
		if err := r.addPage(pdf, faces, i, ordered[i], images[i]); err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}

		percent := float64(i+1) / float64(n) * 100
		r.logger.Debug("document export progress", "page", i+1, "pages", n, "percent", percent)
		if onProgress != nil {
			onProgress(percent)
		}
	}

	if pages := pdf.PageCount(); pages != n {
		return nil, fmt.Errorf("rendering document: %d pages for %d devices", pages, n)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) addPage(pdf *gofpdf.Fpdf, faces *faceCache, i int, d device.Device, img image.Image) error {
	jpg, err := rasterizePageCard(faces, d, img)
	if err != nil {
		return err
	}

	pdf.AddPage()
	pdf.SetFillColor(pageBgR, pageBgG, pageBgB)
	pdf.Rect(0, 0, pageSize, pageSize, "F")

	name := fmt.Sprintf("card-%d", i)
	opts := gofpdf.ImageOptions{ImageType: cardImageFmt}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(jpg))
	pdf.ImageOptions(name, pageCardX, pageCardY, pageCardW, pageCardH, false, opts, 0, "")

	if r.opts.QRCodes && d.WikiURL != "" {
		png, err := qrcode.Encode(d.WikiURL, qrcode.Medium, qrPixelSize)
		if err != nil {
			return fmt.Errorf("encoding qr code: %w", err)
		}
		qrName := fmt.Sprintf("qr-%d", i)
		qrOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(qrName, qrOpts, bytes.NewReader(png))
		pos := float64(pageSize - qrSize - qrInset)
		pdf.ImageOptions(qrName, pos, pos, qrSize, qrSize, false, qrOpts, 0, d.WikiURL)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

// rasterizePageCard paints the page-scale card and encodes it as JPEG.
func rasterizePageCard(faces *faceCache, d device.Device, img image.Image) ([]byte, error) {
	dc := gg.NewContext(pageCardW, pageCardH)
	dc.SetRGB(float64(pageBgR)/255, float64(pageBgG)/255, float64(pageBgB)/255)
	dc.Clear()
	paintCard(dc, faces, Rect{X: 0, Y: 0, W: pageCardW, H: pageCardH}, d, img, pageCardStyle)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding card: %w", err)
	}
	return buf.Bytes(), nil
}
