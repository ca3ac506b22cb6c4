package pdf

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// ZipParts writes every part into a zip archive on w, using the part names.
func ZipParts(parts []Part, w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, part := range parts {
		if err := addZipEntry(zw, part); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addZipEntry(zw *zip.Writer, part Part) error {
	f, err := os.Open(part.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", part.Name, err)
	}
	defer f.Close()

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: part.Name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", part.Name, err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("failed to write zip entry %s: %w", part.Name, err)
	}
	return nil
}
