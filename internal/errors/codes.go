package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthEmailTaken             ErrorCode = "AUTH_006"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
	ValidationInvalidAmount ErrorCode = "VALIDATION_005"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound           ErrorCode = "TRANSACTION_001"
	TransactionCreditCardRequired ErrorCode = "TRANSACTION_002"
	TransactionInvalidPayment     ErrorCode = "TRANSACTION_003"
)

// Statement upload error codes (UPLOAD_*)
const (
	UploadHeaderNotFound   ErrorCode = "UPLOAD_001"
	UploadColumnsNotFound  ErrorCode = "UPLOAD_002"
	UploadUnsupportedType  ErrorCode = "UPLOAD_003"
	UploadEmptyWorkbook    ErrorCode = "UPLOAD_004"
	UploadNoTransactions   ErrorCode = "UPLOAD_005"
	UploadPDFNotSupported  ErrorCode = "UPLOAD_006"
	UploadFileTooLarge     ErrorCode = "UPLOAD_007"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound        ErrorCode = "CATEGORY_001"
	CategoryNotDeletable    ErrorCode = "CATEGORY_002"
	CategoryRenameToOther   ErrorCode = "CATEGORY_003"
	CategoryAlreadyExists   ErrorCode = "CATEGORY_004"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetInvalidPeriod ErrorCode = "BUDGET_002"
)

// Credit card error codes (CARD_*)
const (
	CreditCardNotFound ErrorCode = "CARD_001"
	CreditCardInUse    ErrorCode = "CARD_002"
)

// Receipt error codes (RECEIPT_*)
const (
	ReceiptNotFound     ErrorCode = "RECEIPT_001"
	ReceiptNoOCRText    ErrorCode = "RECEIPT_002"
	ReceiptAlreadyLinked ErrorCode = "RECEIPT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",
	AuthEmailTaken:             "An account with this email already exists",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationInvalidAmount: "Invalid amount",

	// Transaction errors
	TransactionNotFound:           "Transaction not found",
	TransactionCreditCardRequired: "A credit card must be selected for credit card payments",
	TransactionInvalidPayment:     "Invalid payment method",

	// Upload errors
	UploadHeaderNotFound:  "Could not find a valid header row in the first 10 rows of the file",
	UploadColumnsNotFound: "Required columns not found in the header row",
	UploadUnsupportedType: "Unsupported file type",
	UploadEmptyWorkbook:   "The spreadsheet file is empty",
	UploadNoTransactions:  "No valid transactions found in the file",
	UploadPDFNotSupported: "PDF statement processing is not supported",
	UploadFileTooLarge:    "Uploaded file exceeds the size limit",

	// Category errors
	CategoryNotFound:      "Category not found",
	CategoryNotDeletable:  "Built-in categories cannot be deleted",
	CategoryRenameToOther: "Categories cannot be renamed into 'other'",
	CategoryAlreadyExists: "A category with this name already exists",

	// Budget errors
	BudgetNotFound:      "Budget not found",
	BudgetInvalidPeriod: "Budget period must be monthly, quarterly or yearly",

	// Credit card errors
	CreditCardNotFound: "Credit card not found",
	CreditCardInUse:    "Credit card is referenced by existing transactions",

	// Receipt errors
	ReceiptNotFound:      "Receipt not found",
	ReceiptNoOCRText:     "Receipt has no OCR text to extract from",
	ReceiptAlreadyLinked: "Receipt is already linked to a transaction",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
