package models

import "strings"

// ImageLinks holds the cover image URLs of a volume
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// VolumeInfo is the bibliographic part of a search result
type VolumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	PublishedDate string      `json:"publishedDate,omitempty"`
	Description   string      `json:"description,omitempty"`
	PageCount     *int        `json:"pageCount,omitempty"`
	Categories    []string    `json:"categories,omitempty"`
	AverageRating *float64    `json:"averageRating,omitempty"`
	ImageLinks    *ImageLinks `json:"imageLinks,omitempty"`
	PreviewLink   string      `json:"previewLink,omitempty"`
}

// AccessInfo describes what the publisher allows for a volume
type AccessInfo struct {
	Embeddable *bool `json:"embeddable,omitempty"`
}

// Volume is a single item of the volumes search response
type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo VolumeInfo  `json:"volumeInfo"`
	AccessInfo *AccessInfo `json:"accessInfo,omitempty"`
}

// VolumesResponse represents the API response for a volume search
type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items,omitempty"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// BookSummary is one search result's metadata record. Values are copied,
// never shared, between the result list, the selection and the reader.
type BookSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Description   string   `json:"description,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PageCount     *int     `json:"page_count,omitempty"`
	PreviewLink   string   `json:"preview_link,omitempty"`
	Embeddable    *bool    `json:"embeddable,omitempty"`
}

// Summary flattens a volume into a BookSummary
func (v Volume) Summary() BookSummary {
	info := v.VolumeInfo
	b := BookSummary{
		ID:            v.ID,
		Title:         info.Title,
		Authors:       cloneStrings(info.Authors),
		AverageRating: info.AverageRating,
		PublishedDate: info.PublishedDate,
		Categories:    cloneStrings(info.Categories),
		Description:   info.Description,
		Publisher:     info.Publisher,
		PageCount:     info.PageCount,
		PreviewLink:   info.PreviewLink,
	}
	if info.ImageLinks != nil {
		b.Thumbnail = secureURL(info.ImageLinks.Thumbnail)
	}
	if v.AccessInfo != nil {
		b.Embeddable = v.AccessInfo.Embeddable
	}
	return b
}

// Clone returns a deep copy so callers can hold the record by value
func (b BookSummary) Clone() BookSummary {
	dup := b
	dup.Authors = cloneStrings(b.Authors)
	dup.Categories = cloneStrings(b.Categories)
	if b.AverageRating != nil {
		r := *b.AverageRating
		dup.AverageRating = &r
	}
	if b.PageCount != nil {
		n := *b.PageCount
		dup.PageCount = &n
	}
	if b.Embeddable != nil {
		e := *b.Embeddable
		dup.Embeddable = &e
	}
	return dup
}

// IsEmbeddable reports whether the publisher allows an embedded preview
func (b BookSummary) IsEmbeddable() bool {
	return b.Embeddable != nil && *b.Embeddable
}

// secureURL upgrades plain http thumbnails to https
func secureURL(u string) string {
	if strings.HasPrefix(u, "http:") {
		return "https:" + strings.TrimPrefix(u, "http:")
	}
	return u
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
