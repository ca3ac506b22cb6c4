package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// document is a PDF ready to be processed by a handler.
type document struct {
	path  string
	name  string
	pages int
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// newWorkDir creates a per-request directory under the temp dir. The caller removes it.
func (s *Server) newWorkDir() (string, error) {
	if err := ensureTempDir(s.config.TempDir); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	dir, err := os.MkdirTemp(s.config.TempDir, "job_")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	return dir, nil
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	filename = strings.TrimSpace(filepath.Base(filename))

	if filename == "" || filename == "." || filename == "_" {
		filename = "document.pdf"
	}
	return filename
}

// downloadName derives the attachment name from the uploaded name, e.g.
// "report.pdf" with suffix "split" becomes "report_split.pdf".
func downloadName(original, suffix, ext string) string {
	base := "document"
	if original != "" {
		base = original
		if strings.HasSuffix(strings.ToLower(base), ".pdf") {
			base = base[:len(base)-4]
		}
	}
	return sanitizeFilename(base + "_" + suffix + ext)
}

// validatePDFFile checks if the file is a valid PDF by reading the header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return badRequest(fmt.Sprintf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize))
	}

	// Read first 4 bytes to check PDF header
	buffer := make([]byte, 4)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}
	if n < 4 || string(buffer) != "%PDF" {
		return badRequest("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %w", err)
	}
	return nil
}

// saveUpload copies an uploaded file to dst.
func saveUpload(file multipart.File, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if _, err := out.ReadFrom(file); err != nil {
		out.Close()
		os.Remove(dst) // Clean up on error
		return fmt.Errorf("failed to save file: %w", err)
	}
	return out.Close()
}

// receivePDF validates the uploaded PDF header and stores it at dst.
func (s *Server) receivePDF(header *multipart.FileHeader, dst string) error {
	file, err := header.Open()
	if err != nil {
		return badRequest("No PDF file provided")
	}
	defer file.Close()

	if err := validatePDFFile(file, header, s.config.MaxFileSize); err != nil {
		return err
	}
	return saveUpload(file, dst)
}

// countPages asks the processor for the page count, treating failure as a bad upload.
func (s *Server) countPages(path string) (int, error) {
	pages, err := s.pdf.PageCount(path)
	if err != nil {
		s.log.WithError(err).Warn("unreadable PDF upload")
		return 0, badRequest("Could not read PDF file")
	}
	return pages, nil
}

// loadDocument resolves the request's input PDF: a registered document named
// by the file_id form field, or an uploaded "pdf" file saved into workDir.
func (s *Server) loadDocument(c *gin.Context, workDir string) (*document, error) {
	if id := c.PostForm("file_id"); id != "" {
		doc, err := s.lookupDocument(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		return &document{path: doc.Path, name: doc.Name, pages: doc.Pages}, nil
	}

	header, err := c.FormFile("pdf")
	if err != nil {
		return nil, badRequest("No PDF file provided")
	}
	inFile := filepath.Join(workDir, "input.pdf")
	if err := s.receivePDF(header, inFile); err != nil {
		return nil, err
	}
	pages, err := s.countPages(inFile)
	if err != nil {
		return nil, err
	}
	return &document{path: inFile, name: header.Filename, pages: pages}, nil
}

// sendFile returns path as a download named filename.
func sendFile(c *gin.Context, path, contentType, filename string) {
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF operation did not produce output file"})
		return
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.File(path)
}
