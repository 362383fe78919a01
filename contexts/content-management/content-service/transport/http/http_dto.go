package httptransport

// ErrorResponse is the wire form of every error surfaced to clients.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type BlockPayload struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type PageDataPayload struct {
	Blocks []BlockPayload `json:"blocks"`
}

type CreateContentRequest struct {
	ContentTypeID   string           `json:"content_type_id"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Excerpt         string           `json:"excerpt,omitempty"`
	HeroImageURL    string           `json:"hero_image_url,omitempty"`
	PageData        *PageDataPayload `json:"page_data,omitempty"`
	MetaTitle       string           `json:"meta_title,omitempty"`
	MetaDescription string           `json:"meta_description,omitempty"`
	MetaKeywords    []string         `json:"meta_keywords,omitempty"`
	DepartmentID    string           `json:"department_id,omitempty"`
}

type UpdateContentRequest struct {
	Title           *string          `json:"title,omitempty"`
	Slug            *string          `json:"slug,omitempty"`
	Excerpt         *string          `json:"excerpt,omitempty"`
	HeroImageURL    *string          `json:"hero_image_url,omitempty"`
	PageData        *PageDataPayload `json:"page_data,omitempty"`
	MetaTitle       *string          `json:"meta_title,omitempty"`
	MetaDescription *string          `json:"meta_description,omitempty"`
	MetaKeywords    *[]string        `json:"meta_keywords,omitempty"`
	DepartmentID    *string          `json:"department_id,omitempty"`
}

type ContentItemPayload struct {
	ID              string           `json:"id"`
	ContentTypeID   string           `json:"content_type_id"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Excerpt         string           `json:"excerpt,omitempty"`
	HeroImageURL    string           `json:"hero_image_url,omitempty"`
	PageData        *PageDataPayload `json:"page_data,omitempty"`
	MetaTitle       string           `json:"meta_title,omitempty"`
	MetaDescription string           `json:"meta_description,omitempty"`
	MetaKeywords    []string         `json:"meta_keywords,omitempty"`
	Status          string           `json:"status"`
	AuthorID        string           `json:"author_id"`
	DepartmentID    string           `json:"department_id,omitempty"`
	PublishAt       string           `json:"publish_at,omitempty"`
	UnpublishAt     string           `json:"unpublish_at,omitempty"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type ListContentResponse struct {
	Content    []ContentItemPayload `json:"content"`
	Pagination Pagination           `json:"pagination"`
}

type VersionPayload struct {
	ID              string           `json:"id"`
	ContentID       string           `json:"content_id"`
	VersionNumber   int              `json:"version_number"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Excerpt         string           `json:"excerpt,omitempty"`
	HeroImageURL    string           `json:"hero_image_url,omitempty"`
	PageData        *PageDataPayload `json:"page_data,omitempty"`
	MetaTitle       string           `json:"meta_title,omitempty"`
	MetaDescription string           `json:"meta_description,omitempty"`
	MetaKeywords    []string         `json:"meta_keywords,omitempty"`
	CreatedBy       string           `json:"created_by"`
	CreatedAt       string           `json:"created_at"`
}

type ListVersionsResponse struct {
	Versions []VersionPayload `json:"versions"`
	Total    int64            `json:"total"`
}

type RollbackRequest struct {
	VersionNumber int `json:"version_number"`
}

type VersionDifferencesPayload struct {
	Title           bool `json:"title"`
	Slug            bool `json:"slug"`
	Excerpt         bool `json:"excerpt"`
	HeroImageURL    bool `json:"hero_image_url"`
	PageData        bool `json:"page_data"`
	MetaTitle       bool `json:"meta_title"`
	MetaDescription bool `json:"meta_description"`
}

type CompareVersionsResponse struct {
	Version1    VersionPayload            `json:"version_1"`
	Version2    VersionPayload            `json:"version_2"`
	Differences VersionDifferencesPayload `json:"differences"`
}
