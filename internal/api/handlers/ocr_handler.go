package handlers

import (
	"io"
	"net/http"
	"strings"

	"savings-finder/internal/ingest"
	"savings-finder/internal/models"
	"savings-finder/internal/ocr"
)

const (
	maxUploadBytes  = 10 << 20 // per multipart form
	extractWorkers  = 4
	uploadFieldName = "receipt"
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

type extractResponse struct {
	Success bool           `json:"success"`
	Receipt models.Receipt `json:"receipt"`
}

type multiExtractResponse struct {
	Results []ocr.ExtractionResult `json:"results"`
	Count   int                    `json:"count"`
}

type OCRHandler struct {
	extractor ocr.TextExtractor
}

func NewOCRHandler(extractor ocr.TextExtractor) *OCRHandler {
	return &OCRHandler{extractor: extractor}
}

// requireProvince reads and canonicalizes the province form field, rejecting
// requests without a known province code.
func requireProvince(w http.ResponseWriter, r *http.Request) (string, bool) {
	province := strings.ToUpper(strings.TrimSpace(r.FormValue("province")))
	if province == "" {
		writeError(w, http.StatusBadRequest, "province is required")
		return "", false
	}
	if !models.IsKnownProvince(province) {
		writeError(w, http.StatusBadRequest, "unknown province code")
		return "", false
	}
	return province, true
}

// ProcessImage handles POST /api/ocr/process-image
func (h *OCRHandler) ProcessImage(w http.ResponseWriter, r *http.Request) {
	h.processSingle(w, r)
}

// ProcessPDF handles POST /api/ocr/process-pdf
func (h *OCRHandler) ProcessPDF(w http.ResponseWriter, r *http.Request) {
	h.processSingle(w, r)
}

func (h *OCRHandler) processSingle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	province, ok := requireProvince(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		writeError(w, http.StatusBadRequest, "invalid file type; only JPEG, PNG and PDF are allowed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	receipt, err := h.extractor.ExtractReceipt(r.Context(), data, contentType, province)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !ingest.ValidateReceipt(receipt) {
		writeError(w, http.StatusInternalServerError, "extractor produced an invalid receipt")
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Success: true,
		Receipt: ingest.NormalizeReceipt(receipt),
	})
}

// ProcessMultiple handles POST /api/ocr/process-multiple; the uploads are
// extracted concurrently and the results keep the upload order.
func (h *OCRHandler) ProcessMultiple(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	province, ok := requireProvince(w, r)
	if !ok {
		return
	}

	headers := r.MultipartForm.File["receipts"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	uploads := make([]ocr.Upload, 0, len(headers))
	for _, header := range headers {
		contentType := header.Header.Get("Content-Type")
		if !allowedUploadTypes[contentType] {
			writeError(w, http.StatusBadRequest, "invalid file type; only JPEG, PNG and PDF are allowed")
			return
		}
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read upload")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read upload")
			return
		}
		uploads = append(uploads, ocr.Upload{Data: data, ContentType: contentType})
	}

	results := ocr.ProcessAll(r.Context(), h.extractor, uploads, province, extractWorkers)
	writeJSON(w, http.StatusOK, multiExtractResponse{
		Results: results,
		Count:   len(results),
	})
}
