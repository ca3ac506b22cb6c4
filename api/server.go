package api

import (
	"pdf_toolkit/pagespec"
	pdfPkg "pdf_toolkit/pdf"
	"pdf_toolkit/store"

	"github.com/sirupsen/logrus"
)

// Processor is the document processor the handlers delegate to.
type Processor interface {
	PageCount(filename string) (int, error)
	ExtractRanges(inFile, outFile string, ranges pagespec.Ranges) error
	SplitRanges(inFile, outDir string, ranges pagespec.Ranges) ([]pdfPkg.Part, error)
	SplitEvery(inFile, outDir string, interval int) ([]pdfPkg.Part, error)
	RemovePages(inFile, outFile string, set pagespec.PageSet) error
	Arrange(inFile, outFile string, order []int) error
	Merge(inFiles []string, outFile string) error
	Compress(inFile, outFile string) error
	ImagesToPDF(images []string, outFile string, layout pdfPkg.ImageLayout) error
}

// Server carries the state shared by all handlers.
type Server struct {
	config *Config
	pdf    Processor
	docs   store.Store
	log    logrus.FieldLogger
}

func NewServer(config *Config, pdf Processor, docs store.Store, log logrus.FieldLogger) *Server {
	return &Server{config: config, pdf: pdf, docs: docs, log: log}
}
