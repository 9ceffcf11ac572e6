package domain

// FileType represents the allowed content file types for controlled documents.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOC  FileType = "doc"
	FileTypeDOCX FileType = "docx"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeDOC:  "application/msword",
	FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"doc":  FileTypeDOC,
	"docx": FileTypeDOCX,
}
