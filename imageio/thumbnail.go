package imageio

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

// Downscale img so that it fits inside a maxW x maxH box while preserving
// its aspect ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxW, maxH uint) image.Image {
	return resize.Thumbnail(maxW, maxH, img, resize.Bilinear)
}

// Parse a thumbnail size in WxH form.
func ParseSize(size string) (uint, uint, error) {
	var w, h uint
	if n, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil || n != 2 || w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("imageio: invalid size %q; expected WxH", size)
	}
	return w, h, nil
}
