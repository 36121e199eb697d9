package docx

import (
	"archive/zip"
	"image"
	"path"
	"sort"
	"strings"

	// Decoders registered for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/docnorm/model"
)

const mediaPrefix = "word/media/"

// extractImages describes every image stored under word/media/, in name
// order. Dimensions are zero for formats without a registered decoder
// (EMF, WMF, SVG).
func (r *Reader) extractImages() []model.ImageRef {
	var files []*zip.File
	for _, f := range r.zipReader.File {
		if strings.HasPrefix(f.Name, mediaPrefix) && !strings.HasSuffix(f.Name, "/") {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	images := make([]model.ImageRef, 0, len(files))
	for _, f := range files {
		ref := model.ImageRef{
			Index:     len(images) + 1,
			Name:      path.Base(f.Name),
			Format:    strings.TrimPrefix(strings.ToLower(path.Ext(f.Name)), "."),
			SizeBytes: int(f.UncompressedSize64),
		}
		if cfg, format, err := decodeConfig(f); err == nil {
			ref.Width, ref.Height, ref.Format = cfg.Width, cfg.Height, format
		}
		images = append(images, ref)
	}
	return images
}

func decodeConfig(f *zip.File) (image.Config, string, error) {
	rc, err := f.Open()
	if err != nil {
		return image.Config{}, "", err
	}
	defer rc.Close()
	return image.DecodeConfig(rc)
}
