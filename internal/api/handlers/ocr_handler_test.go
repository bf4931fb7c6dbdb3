package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savings-finder/internal/api/handlers"
	"savings-finder/internal/models"
	mock_ocr "savings-finder/internal/ocr/mocks"
)

func strPtr(s string) *string { return &s }

func multipartUpload(t *testing.T, field, filename, contentType, province string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if province != "" {
		require.NoError(t, writer.WriteField("province", province))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func stubReceipt() models.Receipt {
	return models.Receipt{
		ReceiptID:   "receipt_abc",
		ReceiptDate: "2024-12-01",
		Province:    "ON",
		Items: []models.ReceiptItem{
			{ProductID: strPtr("123456"), ProductName: "Organic Whole Milk", PricePaid: 8.99},
		},
	}
}

func TestOCRHandlerProcessImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := mock_ocr.NewMockTextExtractor(ctrl)
	extractor.EXPECT().
		ExtractReceipt(gomock.Any(), []byte("png bytes"), "image/png", "ON").
		Return(stubReceipt(), nil)

	h := handlers.NewOCRHandler(extractor)

	body, contentType := multipartUpload(t, "receipt", "receipt.png", "image/png", "ON", []byte("png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/ocr/process-image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.ProcessImage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool           `json:"success"`
		Receipt models.Receipt `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "receipt_abc", resp.Receipt.ReceiptID)
}

func TestOCRHandlerRejectsBadUploads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := mock_ocr.NewMockTextExtractor(ctrl) // must never be called
	h := handlers.NewOCRHandler(extractor)

	t.Run("missing province", func(t *testing.T) {
		body, contentType := multipartUpload(t, "receipt", "receipt.png", "image/png", "", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/ocr/process-image", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.ProcessImage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown province", func(t *testing.T) {
		body, contentType := multipartUpload(t, "receipt", "receipt.png", "image/png", "ZZ", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/ocr/process-image", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.ProcessImage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("disallowed content type", func(t *testing.T) {
		body, contentType := multipartUpload(t, "receipt", "receipt.gif", "image/gif", "ON", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/ocr/process-image", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.ProcessImage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("province", "ON"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/ocr/process-image", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()

		h.ProcessImage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOCRHandlerProcessMultiple(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := mock_ocr.NewMockTextExtractor(ctrl)
	extractor.EXPECT().
		ExtractReceipt(gomock.Any(), gomock.Any(), "image/png", "ON").
		Return(stubReceipt(), nil).
		Times(2)

	h := handlers.NewOCRHandler(extractor)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("province", "ON"))
	for _, name := range []string{"a.png", "b.png"} {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="receipts"; filename="`+name+`"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ocr/process-multiple", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	h.ProcessMultiple(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count   int `json:"count"`
		Results []struct {
			Success bool `json:"success"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	for _, res := range resp.Results {
		assert.True(t, res.Success)
	}
}
