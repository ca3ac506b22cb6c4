package api

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pdf_toolkit/pagespec"
	pdfPkg "pdf_toolkit/pdf"
	"pdf_toolkit/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// result is a file produced by an operation, ready to be downloaded.
type result struct {
	path        string
	contentType string
	filename    string
}

func pdfResult(path, original, suffix string) *result {
	return &result{path: path, contentType: "application/pdf", filename: downloadName(original, suffix, ".pdf")}
}

func (s *Server) HandleUpload(c *gin.Context) {
	header, err := c.FormFile("pdf")
	if err != nil {
		s.fail(c, badRequest("No file uploaded"))
		return
	}
	doc, err := s.register(c.Request.Context(), header)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, documentJSON(doc))
}

func (s *Server) HandleUploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files[]"]) == 0 {
		s.fail(c, badRequest("No file part"))
		return
	}
	headers := form.File["files[]"]

	docs := make([]*store.Document, len(headers))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(UploadConcurrency)
	for i, header := range headers {
		g.Go(func() error {
			doc, err := s.register(ctx, header)
			if err != nil {
				return fmt.Errorf("error processing %s: %w", header.Filename, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, doc := range docs {
			if doc != nil {
				s.forget(context.WithoutCancel(ctx), doc)
			}
		}
		s.fail(c, err)
		return
	}

	files := make([]gin.H, len(docs))
	for i, doc := range docs {
		files[i] = documentJSON(doc)
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// max_page is capped because set mode expands every page up to it.
type parsePagesRequest struct {
	Pages   string `json:"pages"`
	MaxPage int    `json:"max_page" binding:"required,min=1,max=10000"`
	Mode    string `json:"mode" binding:"omitempty,oneof=ranges set"`
}

// HandleParsePages validates a page specification without touching any document.
func (s *Server) HandleParsePages(c *gin.Context) {
	var req parsePagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, badRequest(err.Error()))
		return
	}

	if req.Mode == "set" {
		set := pagespec.ParsePageSet(req.Pages, req.MaxPage)
		if set.Len() == 0 {
			s.fail(c, ErrInvalidPageSpec)
			return
		}
		c.JSON(http.StatusOK, gin.H{"mode": "set", "pages": set.Sorted()})
		return
	}

	ranges := pagespec.ParseRanges(req.Pages, req.MaxPage)
	if ranges == nil {
		s.fail(c, ErrInvalidPageSpec)
		return
	}
	total := 0
	for _, r := range ranges {
		total += r.Len()
	}
	c.JSON(http.StatusOK, gin.H{"mode": "ranges", "ranges": ranges, "total": total})
}

func (s *Server) HandleSplit(c *gin.Context) {
	method := c.DefaultPostForm("method", "range")
	switch method {
	case "range":
		pagesParam := c.PostForm("pages")
		if strings.TrimSpace(pagesParam) == "" {
			s.fail(c, badRequest("Please enter page ranges to split by (e.g. 1-3, 5, 7-9)"))
			return
		}
		separate, err := strconv.ParseBool(c.DefaultPostForm("separate", "false"))
		if err != nil {
			s.fail(c, badRequest("separate must be true or false"))
			return
		}
		s.handlePDFFile(c, func(doc *document, workDir string) (*result, error) {
			ranges := pagespec.ParseRanges(pagesParam, doc.pages)
			if ranges == nil {
				return nil, ErrInvalidPageSpec
			}
			if separate {
				parts, err := s.pdf.SplitRanges(doc.path, workDir, ranges)
				if err != nil {
					return nil, err
				}
				return zipResult(parts, workDir, doc.name)
			}
			outFile := filepath.Join(workDir, "output.pdf")
			if err := s.pdf.ExtractRanges(doc.path, outFile, ranges); err != nil {
				return nil, err
			}
			return pdfResult(outFile, doc.name, "split"), nil
		})
	case "interval":
		interval, err := strconv.Atoi(strings.TrimSpace(c.DefaultPostForm("interval", "1")))
		if err != nil || interval < 1 {
			s.fail(c, badRequest("Interval must be at least 1"))
			return
		}
		s.handlePDFFile(c, func(doc *document, workDir string) (*result, error) {
			parts, err := s.pdf.SplitEvery(doc.path, workDir, interval)
			if err != nil {
				return nil, err
			}
			return zipResult(parts, workDir, doc.name)
		})
	default:
		s.fail(c, badRequest(fmt.Sprintf("unknown split method %q", method)))
	}
}

func zipResult(parts []pdfPkg.Part, workDir, original string) (*result, error) {
	zipFile := filepath.Join(workDir, "parts.zip")
	out, err := os.Create(zipFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create zip file: %w", err)
	}
	if err := pdfPkg.ZipParts(parts, out); err != nil {
		out.Close()
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write zip file: %w", err)
	}
	return &result{path: zipFile, contentType: "application/zip", filename: downloadName(original, "parts", ".zip")}, nil
}

func (s *Server) HandleRemovePages(c *gin.Context) {
	pagesParam := c.PostForm("pages")
	if strings.TrimSpace(pagesParam) == "" {
		s.fail(c, badRequest("No pages specified"))
		return
	}

	s.handlePDFFile(c, func(doc *document, workDir string) (*result, error) {
		set := pagespec.ParsePageSet(pagesParam, doc.pages)
		if set.Len() == 0 {
			return nil, ErrInvalidPageSpec
		}
		outFile := filepath.Join(workDir, "output.pdf")
		if err := s.pdf.RemovePages(doc.path, outFile, set); err != nil {
			return nil, err
		}
		return pdfResult(outFile, doc.name, "pages_removed"), nil
	})
}

func (s *Server) HandleArrangePages(c *gin.Context) {
	orderParam := c.PostForm("order")
	if strings.TrimSpace(orderParam) == "" {
		s.fail(c, badRequest("Missing file or order"))
		return
	}

	s.handlePDFFile(c, func(doc *document, workDir string) (*result, error) {
		order, err := pagespec.ParseOrder(orderParam, doc.pages)
		if err != nil {
			return nil, err
		}
		outFile := filepath.Join(workDir, "output.pdf")
		if err := s.pdf.Arrange(doc.path, outFile, order); err != nil {
			return nil, err
		}
		return pdfResult(outFile, doc.name, "arranged"), nil
	})
}

func (s *Server) HandleResave(c *gin.Context) {
	s.handlePDFFile(c, func(doc *document, workDir string) (*result, error) {
		outFile := filepath.Join(workDir, "output.pdf")
		if err := s.pdf.Compress(doc.path, outFile); err != nil {
			return nil, err
		}
		return pdfResult(outFile, doc.name, "resaved"), nil
	})
}

func (s *Server) HandleMerge(c *gin.Context) {
	s.withWorkDir(c, func(workDir string) (*result, error) {
		inFiles, err := s.mergeInputs(c, workDir)
		if err != nil {
			return nil, err
		}
		outFile := filepath.Join(workDir, "merged.pdf")
		if err := s.pdf.Merge(inFiles, outFile); err != nil {
			return nil, err
		}
		return &result{path: outFile, contentType: "application/pdf", filename: "merged.pdf"}, nil
	})
}

// mergeInputs collects merge inputs from file_ids or from uploaded files[], in request order.
func (s *Server) mergeInputs(c *gin.Context, workDir string) ([]string, error) {
	if ids := c.PostForm("file_ids"); ids != "" {
		var inFiles []string
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id == "" {
				continue
			}
			doc, err := s.lookupDocument(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			inFiles = append(inFiles, doc.Path)
		}
		return inFiles, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, pdfPkg.ErrTooFewInputs
	}
	headers := form.File["files[]"]
	inFiles := make([]string, 0, len(headers))
	for i, header := range headers {
		inFile := filepath.Join(workDir, fmt.Sprintf("input_%d.pdf", i+1))
		if err := s.receivePDF(header, inFile); err != nil {
			return nil, err
		}
		inFiles = append(inFiles, inFile)
	}
	return inFiles, nil
}

func (s *Server) HandleImagesToPDF(c *gin.Context) {
	layout, err := imageLayout(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.withWorkDir(c, func(workDir string) (*result, error) {
		form, err := c.MultipartForm()
		if err != nil || len(form.File["images[]"]) == 0 {
			return nil, pdfPkg.ErrNoImages
		}
		var images []string
		for i, header := range form.File["images[]"] {
			image, err := s.receiveImage(header, workDir, i)
			if err != nil {
				return nil, err
			}
			images = append(images, image)
		}
		outFile := filepath.Join(workDir, "scanned.pdf")
		if err := s.pdf.ImagesToPDF(images, outFile, layout); err != nil {
			return nil, err
		}
		return &result{path: outFile, contentType: "application/pdf", filename: "scanned.pdf"}, nil
	})
}

// imageLayout reads the page_size, custom_width, custom_height, margin and fit
// form fields. Sizes and the margin are in millimetres.
func imageLayout(c *gin.Context) (pdfPkg.ImageLayout, error) {
	layout := pdfPkg.DefaultImageLayout()
	if v := strings.TrimSpace(c.PostForm("page_size")); v != "" {
		layout.PageSize = v
	}
	if v := strings.TrimSpace(c.PostForm("fit")); v != "" {
		layout.Fit = v
	}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"margin", &layout.Margin},
		{"custom_width", &layout.Width},
		{"custom_height", &layout.Height},
	}
	for _, f := range fields {
		v := strings.TrimSpace(c.PostForm(f.name))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return layout, badRequest(fmt.Sprintf("%s must be a number", f.name))
		}
		*f.dst = n
	}
	if layout.PageSize == pdfPkg.PageSizeCustom {
		if layout.Width == 0 {
			layout.Width = 210
		}
		if layout.Height == 0 {
			layout.Height = 297
		}
	}
	return layout, nil
}

func (s *Server) receiveImage(header *multipart.FileHeader, workDir string, i int) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", badRequest(fmt.Sprintf("File type not allowed: %s", sanitizeFilename(header.Filename)))
	}
	if header.Size > s.config.MaxFileSize {
		return "", badRequest(fmt.Sprintf("file size %d exceeds maximum allowed %d bytes", header.Size, s.config.MaxFileSize))
	}
	file, err := header.Open()
	if err != nil {
		return "", badRequest("No images provided")
	}
	defer file.Close()

	dst := filepath.Join(workDir, fmt.Sprintf("image_%d%s", i+1, ext))
	if err := saveUpload(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (s *Server) HandleDownloadDocument(c *gin.Context) {
	doc, err := s.lookupDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, doc.Path, "application/pdf", sanitizeFilename(doc.Name))
}

func (s *Server) HandleDeleteDocument(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := s.docs.Get(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.forget(ctx, doc)
	c.Status(http.StatusNoContent)
}

// handlePDFFile resolves the input document, runs operation on it and sends the result.
func (s *Server) handlePDFFile(c *gin.Context, operation func(doc *document, workDir string) (*result, error)) {
	s.withWorkDir(c, func(workDir string) (*result, error) {
		doc, err := s.loadDocument(c, workDir)
		if err != nil {
			return nil, err
		}
		return operation(doc, workDir)
	})
}

// withWorkDir runs fn inside a fresh work directory that is removed once the
// response has been written.
func (s *Server) withWorkDir(c *gin.Context, fn func(workDir string) (*result, error)) {
	workDir, err := s.newWorkDir()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer os.RemoveAll(workDir)

	res, err := fn(workDir)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, res.path, res.contentType, res.filename)
}

// register stores an uploaded PDF under the temp dir and records it in the registry.
func (s *Server) register(ctx context.Context, header *multipart.FileHeader) (*store.Document, error) {
	if err := ensureTempDir(s.config.TempDir); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	id := store.NewID()
	path := filepath.Join(s.config.TempDir, "doc_"+id+".pdf")
	if err := s.receivePDF(header, path); err != nil {
		return nil, err
	}
	pages, err := s.countPages(path)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	now := time.Now()
	doc := &store.Document{
		ID:         id,
		Name:       sanitizeFilename(header.Filename),
		Path:       path,
		Pages:      pages,
		Size:       header.Size,
		UploadedAt: now,
	}
	if s.config.DocumentTTL > 0 {
		doc.ExpiresAt = now.Add(s.config.DocumentTTL)
	}
	if err := s.docs.Put(ctx, doc); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to register document: %w", err)
	}
	s.log.WithFields(logrus.Fields{"id": id, "pages": pages}).Info("document uploaded")
	return doc, nil
}

// lookupDocument returns the registered document with id. A document whose file
// is already gone, e.g. removed by an expiry sweep, is reported as not found.
func (s *Server) lookupDocument(ctx context.Context, id string) (*store.Document, error) {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(doc.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	return doc, nil
}

// forget removes a registered document and its file.
func (s *Server) forget(ctx context.Context, doc *store.Document) {
	if err := s.docs.Delete(ctx, doc.ID); err != nil {
		s.log.WithError(err).WithField("id", doc.ID).Warn("failed to delete document")
	}
	if err := os.Remove(doc.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.WithError(err).WithField("id", doc.ID).Warn("failed to remove document file")
	}
}

func documentJSON(doc *store.Document) gin.H {
	return gin.H{
		"id":    doc.ID,
		"name":  doc.Name,
		"pages": doc.Pages,
		"size":  doc.Size,
		"date":  doc.UploadedAt.Format("2006-01-02 15:04:05"),
	}
}
