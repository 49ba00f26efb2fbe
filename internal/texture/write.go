// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// Supported output formats
const (
	FormatPNG  = "png"
	FormatJPG  = "jpg"
	FormatTIFF = "tif"
	FormatSVG  = "svg"
)

// Returns the output format for the suffix of the given file name
func FormatFromName(fileName string) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unknown output format for file '%s'", fileName)
	}
}

// Returns the content type of an output format, for HTTP responses
func ContentType(format string) string {
	switch format {
	case FormatJPG:
		return "image/jpeg"
	case FormatTIFF:
		return "image/tiff"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// Encodes a raster image in the given format. Quality applies to JPG only
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("cannot encode raster image as '%s'", format)
	}
}

// Writes the scene to a file, choosing the format by suffix. Raster formats rasterize
// the given image, SVG writes the scene directly. Creates missing parent directories
func WriteFile(fileName string, img image.Image, scene *Scene, quality int) error {
	format, err := FormatFromName(fileName)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(file)

	if format == FormatSVG {
		err = scene.WriteSVG(writer)
	} else {
		err = Encode(writer, img, format, quality)
	}
	if err == nil {
		err = writer.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}
	return nil
}
