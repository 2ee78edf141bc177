package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// screenshotName builds the timestamped output filename, local time to
// millisecond precision.
func screenshotName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%03d.png",
		prefix, t.Format("2006-01-02_15_04_05"), t.Nanosecond()/1e6)
}

// bgraToRGBA converts a mapped BGRA surface into an RGBA image,
// honoring the surface's row pitch (rows may be padded past w*4).
func bgraToRGBA(data []byte, rowPitch, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := data[y*rowPitch:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			dst[x*4+0] = src[x*4+2]
			dst[x*4+1] = src[x*4+1]
			dst[x*4+2] = src[x*4+0]
			dst[x*4+3] = 0xff
		}
	}
	return img
}

// writePNG encodes img into dir under the timestamped name and returns
// the written path.
func writePNG(img image.Image, dir, prefix string, t time.Time) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create screenshot dir: %w", err)
		}
	}
	path := filepath.Join(dir, screenshotName(prefix, t))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
