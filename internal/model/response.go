package model

// UploadResponse is returned on a successful GET request.
type UploadResponse struct {
	UploadURL string `json:"uploadURL"`
}

// ErrorResponse is returned for any failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error messages returned to API callers.
const (
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgMissingParams       = "Missing fileName or fileType. Provide both in query parameters."
	MsgBucketNotConfigured = "Bucket environment variable not configured."
	MsgUnexpectedPrefix    = "An unexpected error occurred: "
)
