package export

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	// Decoders for device images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/device-timeline/internal/device"
)

// maxImageBytes caps a single downloaded image.
const maxImageBytes = 16 << 20

// ImageLoader fetches and decodes a device image.
type ImageLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// HTTPImageLoader loads images over HTTP(S).
type HTTPImageLoader struct {
	client    *http.Client
	userAgent string
}

// NewHTTPImageLoader creates a loader with a per-request timeout.
func NewHTTPImageLoader(timeout time.Duration, userAgent string) *HTTPImageLoader {
	return &HTTPImageLoader{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Load downloads url and decodes it as GIF, JPEG, PNG or WebP.
func (l *HTTPImageLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, ErrNoImage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrImageFetch, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding: %w", ErrImageFetch, err)
	}
	return img, nil
}

// prefetchImages loads every device image with at most limit in flight.
// Failed loads leave a nil entry. The only error is ctx cancellation.
func (r *Renderer) prefetchImages(ctx context.Context, devices []device.Device) ([]image.Image, error) {
	images := make([]image.Image, len(devices))
	if r.images == nil {
		return images, nil
	}

	var g errgroup.Group
	g.SetLimit(max(1, r.opts.ImageConcurrency))

	for i := range devices {
		url := devices[i].ImageURL
		if url == "" {
			continue
		}
		i := i
		g.Go(func() error {
			img, err := r.images.Load(ctx, url)
			if err != nil {
				r.logger.Debug("device image unavailable, using blank slot", "url", url, "error", err)
				return nil
			}
			images[i] = img
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Workers never return errors

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("loading images: %w", err)
	}
	return images, nil
}
