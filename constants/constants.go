package constants

// GST and invoicing defaults
const (
	DefaultGSTRate      = 18.0
	InvoiceNumberPrefix = "INV"
)

// Upload handling
const (
	BillUploadDir     = "public/bills"
	MaxUploadSizeMB   = 10
	MaxBodyLimitBytes = 50 * 1024 * 1024 // base64 photos ride in JSON bodies
)

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
