package model

import "time"

// ImageMetadata represents a single item in the image processing
// DynamoDB table. Nil optional fields are stored as NULL.
type ImageMetadata struct {
	UniqueID      string  `dynamodbav:"unique_id"`
	ExtractedText *string `dynamodbav:"extracted_text"`
	ImageFileName *string `dynamodbav:"image_file_name"`
	ImageType     string  `dynamodbav:"image_type"`
	ImageSize     *string `dynamodbav:"image_size"`
	ProcessTime   string  `dynamodbav:"process_time"`
}

// NewImageMetadata builds the record for one request at time now.
func NewImageMetadata(now time.Time, q UploadQuery) ImageMetadata {
	processTime := now.Format(ProcessTimeLayout)
	return ImageMetadata{
		UniqueID:      UniqueID(now, q.FileName),
		ExtractedText: q.ExtractedText,
		ImageFileName: q.FileName,
		ImageType:     DeriveImageType(Value(q.FileType)),
		ImageSize:     q.ImageSize,
		ProcessTime:   processTime,
	}
}

// UniqueID returns "<process_time>|<fileName>". A missing file name is
// rendered as "None", matching keys already present in the table.
func UniqueID(now time.Time, fileName *string) string {
	name := "None"
	if fileName != nil {
		name = *fileName
	}
	return now.Format(ProcessTimeLayout) + UniqueIDSeparator + name
}

// DeriveImageType drops the first FileTypePrefixLen bytes of fileType.
func DeriveImageType(fileType string) string {
	if len(fileType) <= FileTypePrefixLen {
		return ""
	}
	return fileType[FileTypePrefixLen:]
}
