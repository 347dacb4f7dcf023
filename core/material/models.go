package material

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/acuhub/portal/core"
)

// Categories
const (
	CategoryMaterial   = "material"
	CategoryAssignment = "assignment"
	CategoryOther      = "other"
)

type Material struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	CourseCode       string    `json:"course_code"`
	Type             string    `json:"type"`
	Category         string    `json:"category"`
	OriginalFileName string    `json:"original_file_name"`
	FileName         string    `json:"file_name"`
	FilePath         string    `json:"-"` // relative to the upload dir
	FileSize         int64     `json:"file_size"`
	ContentType      string    `json:"content_type"`
	UploadedBy       string    `json:"uploaded_by"`
	Downloads        int       `json:"downloads"`
	Rating           float64   `json:"rating"`
	Tags             []string  `json:"tags"`
	IsPublic         bool      `json:"is_public"`
	CreatedAt        time.Time `json:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at"` // UTC
}

// Upload carries the multipart form fields accompanying the file.
type Upload struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	CourseCode  string `form:"course_code" validate:"required,alphanum_"`
	Tags        string `form:"tags"` // comma-separated
	Category    string `form:"category" validate:"omitempty,oneof=material assignment other"`
	IsPublic    bool   `form:"is_public"`
}

func (up *Upload) Validate(validate *validator.Validate) error {
	up.Title = core.CleanString(up.Title)
	up.Description = core.CleanString(up.Description)
	up.CourseCode = core.CleanString(up.CourseCode)
	up.Category = core.CleanString(up.Category, true /* lower */)
	if up.Category == "" {
		up.Category = CategoryMaterial
	}
	return validate.Struct(up)
}

// TagList splits the comma-separated Tags field.
func (up *Upload) TagList() []string {
	if up.Tags == "" {
		return nil
	}
	parts := strings.Split(up.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

type QueryFilter struct {
	CourseCode string `query:"course_code"`
	Type       string `query:"type"`
	Category   string `query:"category"`
	UploadedBy string `query:"uploaded_by"`
	PublicOnly bool   `query:"-"`
}

func (qf *QueryFilter) Clean() {
	qf.CourseCode = core.CleanString(qf.CourseCode)
	qf.Type = core.CleanString(qf.Type, true /* lower */)
	qf.Category = core.CleanString(qf.Category, true /* lower */)
}

var fileTypes = map[string]string{
	".pdf":  "pdf",
	".doc":  "document",
	".docx": "document",
	".ppt":  "presentation",
	".pptx": "presentation",
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".gif":  "image",
	".mp4":  "video",
	".avi":  "video",
	".mov":  "video",
}

// FileType derives the coarse material type from a file name's extension.
func FileType(fileName string) string {
	if typ, ok := fileTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return typ
	}
	return "unknown"
}
