package api

const (
	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// MaxErrorMessageLength truncates processor errors returned to clients
	MaxErrorMessageLength = 200

	// UploadConcurrency bounds parallel page counting in multi-file uploads
	UploadConcurrency = 4
)

// allowedImageExtensions are the image types accepted by images-to-pdf
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}
