// Package models defines the file records returned by the SmartDrive API.
package models

// File is one entry of the file listing.
type File struct {
	Owner      string `json:"username"`
	FileName   string `json:"file_name"`
	FileURL    string `json:"file_url"`
	StorageKey string `json:"s3_key"`
	UploadDate string `json:"upload_date"`
}

// ShareLink is a time-limited download URL.
type ShareLink struct {
	URL       string `json:"share_url"`
	ExpiresIn int64  `json:"expires_in"`
}
