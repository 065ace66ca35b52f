package images

// UploadURLRequest is the request payload for POST /images/upload-url
type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries a presigned upload URL and the assigned key
type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	ImageKey  string `json:"image_key"`
	ExpiresAt int64  `json:"expires_at"`
}

// DownloadURLRequest is the request payload for POST /images/download-url
type DownloadURLRequest struct {
	ImageKey string `json:"image_key" binding:"required"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   int64  `json:"expires_at"`
}
