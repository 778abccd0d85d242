package handlers

import (
	"fmt"
	"io"
	"net/http"

	"fintrack/internal/config"
	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// UploadHandler handles statement file uploads
type UploadHandler struct {
	statementService services.StatementServiceInterface
	uploadConfig     *config.UploadConfig
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(statementService services.StatementServiceInterface, uploadConfig *config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		statementService: statementService,
		uploadConfig:     uploadConfig,
	}
}

// Upload imports bank statement files. Files are processed independently:
// a broken file reports an error in its result while the rest import.
func (h *UploadHandler) Upload(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Expected multipart form data"))
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("No files provided in the 'files' field"))
	}

	if len(fileHeaders) > h.uploadConfig.MaxFilesPerUpload {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails(fmt.Sprintf("At most %d files per upload", h.uploadConfig.MaxFilesPerUpload)))
	}

	files := make([]services.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > h.uploadConfig.MaxFileSize {
			return SendError(c, errors.UploadFileTooLarge,
				errors.WithDetails(fmt.Sprintf("%s exceeds the %d byte limit", fh.Filename, h.uploadConfig.MaxFileSize)))
		}

		src, err := fh.Open()
		if err != nil {
			return SendSystemError(c, err)
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return SendSystemError(c, err)
		}

		files = append(files, services.UploadedFile{
			Name: fh.Filename,
			Data: data,
		})
	}

	response, err := h.statementService.ProcessUploads(userID, files)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}
