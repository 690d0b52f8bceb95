package model

// Domain constants shared across handler, validation, and storage packages.
const (
	PresignedURLTTLSeconds = 300 // 5 minutes

	// ProcessTimeLayout renders process_time with second precision.
	ProcessTimeLayout = "2006-01-02 15:04:05"
	// UniqueIDSeparator joins process_time and the file name in unique_id.
	UniqueIDSeparator = "|"
	// FileTypePrefixLen is the number of leading characters dropped from
	// fileType when deriving image_type.
	FileTypePrefixLen = 5
)

// Query parameter names accepted on GET requests.
const (
	ParamFileName      = "fileName"
	ParamFileType      = "fileType"
	ParamImageSize     = "imageSize"
	ParamExtractedText = "extractedText"
)
