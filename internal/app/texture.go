package app

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/figurine/internal/engine/texture"
)

// LoadTexture returns the rod texture named by path, flipped so row 0 is
// the bottom as GL samples it. Images wider or taller than maxSize are
// scaled down keeping their aspect. An empty path or a failed load yields
// the grey fallback pixel.
func LoadTexture(path string, maxSize int, log *zap.Logger) *image.RGBA {
	if log == nil {
		log = zap.NewNop()
	}
	if path == "" {
		log.Debug("no texture configured, using fallback")
		return texture.Fallback()
	}

	img, err := texture.Load(path)
	if err != nil {
		log.Warn("texture load failed, using fallback", zap.String("path", path), zap.Error(err))
		return texture.Fallback()
	}

	b := img.Bounds()
	if w, h := b.Dx(), b.Dy(); maxSize > 0 && (w > maxSize || h > maxSize) {
		nw, nh := maxSize, maxSize
		if w > h {
			nh = max(1, h*maxSize/w)
		} else {
			nw = max(1, w*maxSize/h)
		}
		img = texture.Resize(img, nw, nh)
		log.Info("texture scaled down",
			zap.String("path", path),
			zap.Int("width", w), zap.Int("height", h),
			zap.Int("new_width", nw), zap.Int("new_height", nh))
	}

	log.Info("texture loaded", zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return texture.FlipVertical(img)
}
