package domain

// MediaFile is an in-memory photo ready to be uploaded.
type MediaFile struct {
	Filename    string `json:"filename" yaml:"filename"`
	ContentType string `json:"content_type" yaml:"content_type"`
	Data        []byte `json:"-" yaml:"-"`
}

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// PhotoExtension returns the file extension for an accepted photo content
// type and false for anything else.
func PhotoExtension(contentType string) (string, bool) {
	ext, ok := photoExtensions[contentType]
	return ext, ok
}
