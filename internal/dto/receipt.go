package dto

// CreateReceiptRequest records an uploaded receipt's metadata. OCRText is
// produced client-side; the server stores and mines it.
type CreateReceiptRequest struct {
	FileName string `json:"fileName" validate:"required"`
	OCRText  string `json:"ocrText"`
}

// LinkReceiptRequest attaches a receipt to a transaction
type LinkReceiptRequest struct {
	TransactionID string `json:"transactionId" validate:"required,uuid"`
}

// ReceiptResponse is the wire form of a receipt
type ReceiptResponse struct {
	ID            string `json:"id"`
	FileName      string `json:"fileName"`
	OCRText       string `json:"ocrText,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

// ReceiptExtractionResponse carries the fields mined from a receipt's OCR text
type ReceiptExtractionResponse struct {
	Merchant string `json:"merchant,omitempty"`
	Date     string `json:"date,omitempty"`
	Amount   string `json:"amount,omitempty"`
}
