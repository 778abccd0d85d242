package dto

// FileUploadResult reports the outcome of processing one statement file.
// A failed file carries an Error and zero Imported; other files in the
// same request still import.
type FileUploadResult struct {
	FileName string `json:"fileName"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// UploadResponse is the aggregate outcome of a statement upload request
type UploadResponse struct {
	Files         []FileUploadResult `json:"files"`
	TotalImported int                `json:"totalImported"`
	TotalSkipped  int                `json:"totalSkipped"`
	FailedFiles   int                `json:"failedFiles"`
}
