package api

import (
	"errors"
	"io/fs"
	"net/http"

	"pdf_toolkit/pagespec"
	pdfPkg "pdf_toolkit/pdf"
	"pdf_toolkit/store"

	"github.com/gin-gonic/gin"
)

// ErrInvalidPageSpec means no page of a page specification survived parsing.
var ErrInvalidPageSpec = errors.New("invalid page range format")

// requestError is a client error carrying the status and message to return.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return &requestError{status: http.StatusBadRequest, message: message}
}

// statusFor maps an error to the HTTP status and the message shown to the client.
func statusFor(err error) (int, string) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status, reqErr.message
	case errors.Is(err, ErrInvalidPageSpec):
		return http.StatusBadRequest, "Invalid page range format"
	case errors.Is(err, pagespec.ErrInvalidOrder):
		return http.StatusBadRequest, "Invalid page number"
	case errors.Is(err, store.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, "Document not found"
	case errors.Is(err, pdfPkg.ErrAllPagesRemoved),
		errors.Is(err, pdfPkg.ErrTooFewInputs),
		errors.Is(err, pdfPkg.ErrNoImages),
		errors.Is(err, pdfPkg.ErrInvalidInterval),
		errors.Is(err, pdfPkg.ErrInvalidLayout):
		return http.StatusBadRequest, err.Error()
	}

	// Truncate long error messages but include key info
	errorMsg := "PDF operation failed"
	if errStr := err.Error(); errStr != "" {
		if len(errStr) > MaxErrorMessageLength {
			errorMsg = errStr[:MaxErrorMessageLength] + "..."
		} else {
			errorMsg = errStr
		}
	}
	return http.StatusInternalServerError, errorMsg
}

// fail writes the JSON error response for err and logs server side failures.
func (s *Server) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", c.FullPath()).Error("PDF operation error")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
