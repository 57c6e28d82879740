package file

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domain "filehub/internal/domain/file"
)

const (
	opUpload   = "upload"
	opDelete   = "delete"
	opDownload = "download"
	opPreview  = "preview"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filehub_file_operations_total",
			Help: "File operations by type and outcome",
		},
		[]string{"operation", "result"},
	)

	uploadedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filehub_uploaded_bytes_total",
			Help: "Bytes written by successful uploads",
		},
	)
)

func observe(operation string, err error) {
	operationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrExists):
		return "conflict"
	case errors.Is(err, domain.ErrEmptyContent), errors.Is(err, domain.ErrInvalidName):
		return "bad_input"
	case errors.Is(err, domain.ErrTooLarge):
		return "too_large"
	default:
		return "error"
	}
}
