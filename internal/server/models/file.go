package models

// UploadDateLayout is the calendar-date format of FileRecord.UploadDate (UTC).
const UploadDateLayout = "2006-01-02"

// FileRecord describes one uploaded file owned by exactly one user.
// The object itself lives in the blob store under StorageKey, which is
// always Owner + "/" + FileName.
//
// JSON names follow the item layout served to the web frontend.
type FileRecord struct {
	// Owner is the username the file belongs to.
	Owner string `json:"username"`
	// FileName is the logical name, unique within the owner's namespace.
	FileName string `json:"file_name"`
	// PublicURL is the stable, non-expiring locator of the object.
	PublicURL string `json:"file_url"`
	// StorageKey is the blob-store key of the object.
	StorageKey string `json:"s3_key"`
	// UploadDate is the UTC calendar date (YYYY-MM-DD) of the last upload.
	UploadDate string `json:"upload_date"`
}
