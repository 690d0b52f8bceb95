package model

// UploadQuery holds the query string parameters of a GET upload-url
// request. Parameters absent from the query string stay nil.
type UploadQuery struct {
	FileName      *string
	FileType      *string
	ImageSize     *string
	ExtractedText *string
}

// ParseUploadQuery picks the known parameters out of a gateway query
// string map. A nil map yields an empty query.
func ParseUploadQuery(params map[string]string) UploadQuery {
	return UploadQuery{
		FileName:      lookup(params, ParamFileName),
		FileType:      lookup(params, ParamFileType),
		ImageSize:     lookup(params, ParamImageSize),
		ExtractedText: lookup(params, ParamExtractedText),
	}
}

func lookup(params map[string]string, name string) *string {
	v, ok := params[name]
	if !ok {
		return nil
	}
	return &v
}

// Value returns the string behind p, or "" when p is nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
