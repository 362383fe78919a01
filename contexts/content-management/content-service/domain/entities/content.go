package entities

import (
	"regexp"
	"strings"
	"time"
)

type ContentStatus string

const (
	StatusDraft       ContentStatus = "Draft"
	StatusInReview    ContentStatus = "InReview"
	StatusApproved    ContentStatus = "Approved"
	StatusPublished   ContentStatus = "Published"
	StatusUnpublished ContentStatus = "Unpublished"
)

func IsSupportedStatus(value ContentStatus) bool {
	switch value {
	case StatusDraft, StatusInReview, StatusApproved, StatusPublished, StatusUnpublished:
		return true
	default:
		return false
	}
}

// Block is one page-builder block. Data is opaque to this service.
type Block struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type PageData struct {
	Blocks []Block `json:"blocks"`
}

// ContentItem is the aggregate the workflow core operates on. Status only
// changes through workflow transitions, never by direct field assignment.
type ContentItem struct {
	ContentID       string        `json:"id"`
	ContentTypeID   string        `json:"content_type_id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Excerpt         string        `json:"excerpt,omitempty"`
	HeroImageURL    string        `json:"hero_image_url,omitempty"`
	PageData        *PageData     `json:"page_data,omitempty"`
	MetaTitle       string        `json:"meta_title,omitempty"`
	MetaDescription string        `json:"meta_description,omitempty"`
	MetaKeywords    []string      `json:"meta_keywords,omitempty"`
	Status          ContentStatus `json:"status"`
	AuthorID        string        `json:"author_id"`
	DepartmentID    string        `json:"department_id,omitempty"`
	PublishAt       *time.Time    `json:"publish_at,omitempty"`
	UnpublishAt     *time.Time    `json:"unpublish_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func (c ContentItem) ValidateBasics() bool {
	title := strings.TrimSpace(c.Title)
	slug := strings.TrimSpace(c.Slug)
	return strings.TrimSpace(c.ContentTypeID) != "" &&
		title != "" &&
		len(title) <= 255 &&
		slug != "" &&
		len(slug) <= 255 &&
		slugPattern.MatchString(slug) &&
		len(c.Excerpt) <= 500 &&
		len(c.MetaTitle) <= 60 &&
		len(c.MetaDescription) <= 160
}

func IsValidSlug(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && len(value) <= 255 && slugPattern.MatchString(value)
}
