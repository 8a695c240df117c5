package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukaji3/pdsextract-go/internal/store"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// ExtractResponse is the body of a successful extraction.
type ExtractResponse struct {
	ID       string          `json:"id"`
	Filename string          `json:"filename"`
	Sections []string        `json:"sections"`
	Document models.Document `json:"document"`
}

// StatusResponse reports the loaded mapping and history totals.
type StatusResponse struct {
	Sections      []string `json:"sections"`
	DefaultSheet  string   `json:"default_sheet"`
	Extractions   int      `json:"extractions"`
	Failed        int      `json:"failed"`
	UptimeSeconds int64    `json:"uptime_seconds"`
}

// Extract handles POST /api/extract with the workbook in the "file" form
// field. The upload is staged under the uploads directory and removed once
// extracted.
func (s *Server) Extract(c *gin.Context) {
	if c.Request.ContentLength > s.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
		return
	}
	body := &limitedBody{ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)}
	c.Request.Body = body

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if body.exceeded || errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing upload field \"file\""})
		return
	}

	id := uuid.NewString()
	path := filepath.Join(s.uploadDir, id+".xlsx")
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.log.Error("failed to stage upload", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(path)

	record := &store.Extraction{
		ID:       id,
		Filename: filepath.Base(file.Filename),
		FileSize: file.Size,
	}

	doc, err := pdsextract.ExtractFile(path, s.schema, s.opts)
	if err != nil {
		record.Status = store.StatusFailed
		record.ErrorMessage = unwrapSource(err).Error()
		s.recordHistory(record)

		status := http.StatusInternalServerError
		if errors.Is(err, pdsextract.ErrUnreadable) || errors.Is(err, pdsextract.ErrNoSheets) {
			status = http.StatusUnprocessableEntity
		}
		s.log.Warn("extraction failed", zap.String("id", id), zap.String("filename", record.Filename), zap.Error(err))
		c.JSON(status, gin.H{"id": id, "error": record.ErrorMessage})
		return
	}

	record.Status = store.StatusOK
	record.Sections = pdsextract.Sections(doc)
	s.recordHistory(record)

	c.JSON(http.StatusOK, ExtractResponse{
		ID:       id,
		Filename: record.Filename,
		Sections: record.Sections,
		Document: doc,
	})
}

// ListExtractions handles GET /api/extractions?limit=N.
func (s *Server) ListExtractions(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	list, err := s.store.List(limit)
	if err != nil {
		s.log.Error("failed to list extractions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list extractions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"extractions": list})
}

// GetStatus handles GET /api/status.
func (s *Server) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Sections:      s.schema.Sections(),
		DefaultSheet:  s.schema.DefaultSheet,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}
	if s.opts.DefaultSheet != "" {
		resp.DefaultSheet = s.opts.DefaultSheet
	}

	// Counts are informational; a failing history does not fail status.
	if n, err := s.store.Count(""); err == nil {
		resp.Extractions = n
	}
	if n, err := s.store.Count(store.StatusFailed); err == nil {
		resp.Failed = n
	}
	c.JSON(http.StatusOK, resp)
}

// limitedBody notes when the size limit was hit, since the multipart
// reader does not always pass the limit error through.
type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		b.exceeded = true
	}
	return n, err
}

func (s *Server) recordHistory(e *store.Extraction) {
	if err := s.store.Record(e); err != nil {
		s.log.Error("failed to record extraction", zap.String("id", e.ID), zap.Error(err))
	}
}

// unwrapSource drops the staged upload path from a load error so clients
// do not see server paths.
func unwrapSource(err error) error {
	var srcErr *pdsextract.SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Err
	}
	return err
}
