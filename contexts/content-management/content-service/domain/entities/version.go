package entities

import (
	"encoding/json"
	"time"
)

// ContentVersion is an immutable snapshot of the editable fields of a content
// item. VersionNumber is monotonically increasing per content item.
type ContentVersion struct {
	VersionID       string    `json:"id"`
	ContentID       string    `json:"content_id"`
	VersionNumber   int       `json:"version_number"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Excerpt         string    `json:"excerpt,omitempty"`
	HeroImageURL    string    `json:"hero_image_url,omitempty"`
	PageData        *PageData `json:"page_data,omitempty"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	MetaKeywords    []string  `json:"meta_keywords,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// SnapshotOf captures the editable fields of a content item. The version
// number is assigned by the repository when the row is inserted.
func SnapshotOf(item ContentItem, createdBy string, at time.Time) ContentVersion {
	return ContentVersion{
		ContentID:       item.ContentID,
		Title:           item.Title,
		Slug:            item.Slug,
		Excerpt:         item.Excerpt,
		HeroImageURL:    item.HeroImageURL,
		PageData:        item.PageData,
		MetaTitle:       item.MetaTitle,
		MetaDescription: item.MetaDescription,
		MetaKeywords:    item.MetaKeywords,
		CreatedBy:       createdBy,
		CreatedAt:       at.UTC(),
	}
}

// VersionDifferences is the fixed per-field changed report for a compare.
// The report is symmetric in its arguments.
type VersionDifferences struct {
	Title           bool `json:"title"`
	Slug            bool `json:"slug"`
	Excerpt         bool `json:"excerpt"`
	HeroImageURL    bool `json:"hero_image_url"`
	PageData        bool `json:"page_data"`
	MetaTitle       bool `json:"meta_title"`
	MetaDescription bool `json:"meta_description"`
}

func CompareVersions(a, b ContentVersion) VersionDifferences {
	return VersionDifferences{
		Title:           a.Title != b.Title,
		Slug:            a.Slug != b.Slug,
		Excerpt:         a.Excerpt != b.Excerpt,
		HeroImageURL:    a.HeroImageURL != b.HeroImageURL,
		PageData:        !pageDataEqual(a.PageData, b.PageData),
		MetaTitle:       a.MetaTitle != b.MetaTitle,
		MetaDescription: a.MetaDescription != b.MetaDescription,
	}
}

// pageDataEqual compares the structured page payloads by their serialized
// form, matching how editors persist them.
func pageDataEqual(a, b *PageData) bool {
	if a == nil && b == nil {
		return true
	}
	rawA, errA := json.Marshal(a)
	rawB, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(rawA) == string(rawB)
}
