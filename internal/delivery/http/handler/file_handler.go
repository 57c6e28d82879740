package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	fileService "filehub/internal/application/file"
	domain "filehub/internal/domain/file"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files
const multipartMemory = 32 << 20

type FileHandler struct {
	service     fileService.Service
	maxFileSize int64
	logger      *slog.Logger
}

func NewFileHandler(service fileService.Service, maxFileSize int64, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// previewResponse is the JSON shape of a preview. Text is a pointer so an
// empty text file still reports "text": "".
type previewResponse struct {
	Type   domain.PreviewType `json:"type"`
	Base64 string             `json:"base64,omitempty"`
	Mime   string             `json:"mime,omitempty"`
	Text   *string            `json:"text,omitempty"`
}

// List handles GET /api/files?sort=...&filter=...
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing, err := h.service.List(identityFromContext(r.Context()), q.Get("sort"), q.Get("filter"))
	if err != nil {
		h.sendFileError(w, r, err)
		return
	}

	SendSuccess(w, "", listing)
}

// Upload handles POST /api/files/upload?overwrite=...
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Allow for multipart framing around a file of maxFileSize bytes
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1<<20)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			SendError(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		SendError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		SendError(w, "No file selected", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		SendError(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	overwrite, _ := strconv.ParseBool(r.FormValue("overwrite"))

	result, err := h.service.Upload(identityFromContext(r.Context()), header.Filename, file, header.Size, overwrite)
	if err != nil {
		if errors.Is(err, domain.ErrExists) {
			SendJSON(w, http.StatusConflict, ConflictResponse{
				Success: false,
				Exists:  true,
				Name:    header.Filename,
			})
			return
		}
		h.sendFileError(w, r, err)
		return
	}

	SendSuccess(w, "File uploaded", result)
}

// Delete handles POST /api/files/delete and answers with the refreshed
// listing whether or not the file existed
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		SendError(w, "Name is required", http.StatusBadRequest)
		return
	}

	identity := identityFromContext(r.Context())
	if err := h.service.Delete(identity, req.Name); err != nil {
		h.sendFileError(w, r, err)
		return
	}

	listing, err := h.service.List(identity, "", "")
	if err != nil {
		h.sendFileError(w, r, err)
		return
	}

	SendSuccess(w, "Deleted", listing)
}

// Download handles GET /api/files/download?name=...
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		SendError(w, "Name is required", http.StatusBadRequest)
		return
	}

	f, err := h.service.Open(identityFromContext(r.Context()), name)
	if err != nil {
		h.sendFileError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.sendFileError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))

	http.ServeContent(w, r, name, info.ModTime(), f)
}

// Preview handles GET /api/files/preview?name=...
func (h *FileHandler) Preview(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		SendError(w, "Name is required", http.StatusBadRequest)
		return
	}

	preview, err := h.service.Preview(identityFromContext(r.Context()), name)
	if err != nil {
		h.sendFileError(w, r, err)
		return
	}

	resp := previewResponse{Type: preview.Type}
	switch preview.Type {
	case domain.PreviewImage:
		resp.Base64 = preview.Base64
		resp.Mime = preview.Mime
	case domain.PreviewText:
		resp.Text = &preview.Text
	}

	SendJSON(w, http.StatusOK, resp)
}

// sendFileError maps file domain errors to HTTP statuses. Anything
// unexpected is logged and reported as a generic server error.
func (h *FileHandler) sendFileError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		SendError(w, "File not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrEmptyContent):
		SendError(w, "No file selected", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidName):
		SendError(w, "Invalid file name", http.StatusBadRequest)
	case errors.Is(err, domain.ErrTooLarge):
		SendError(w, "File too large to preview", http.StatusRequestEntityTooLarge)
	default:
		h.logger.ErrorContext(r.Context(), "file operation failed",
			slog.String("path", r.URL.Path),
			slog.String("user", identityFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		SendError(w, "Internal server error", http.StatusInternalServerError)
	}
}
