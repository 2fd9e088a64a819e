package media

// UploadURLRequest asks for a presigned URL to upload a profile or post picture.
type UploadURLRequest struct {
	ContentType string `json:"contentType" validate:"required"`
}

// UploadInfo tells the client where to PUT the picture and what to store
// as picturePath afterwards.
type UploadInfo struct {
	ObjectKey   string `json:"objectKey"`
	UploadURL   string `json:"uploadUrl"`
	MediaURL    string `json:"mediaUrl"`
	ExpiresAt   int64  `json:"expiresAt"`
	MaxFileSize int64  `json:"maxFileSize"`
	ContentType string `json:"contentType"`
}
