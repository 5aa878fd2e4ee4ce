package model

// UploadedFile describes a file written to upload storage. It is not tracked
// in the database.
type UploadedFile struct {
	Filename    string `json:"filename"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
