package models

import (
	"encoding/json"
	"testing"
)

func TestVolumeSummary(t *testing.T) {
	raw := `{
		"id": "v1",
		"volumeInfo": {
			"title": "Bumi",
			"authors": ["Tere Liye"],
			"pageCount": 440,
			"averageRating": 4,
			"imageLinks": {"smallThumbnail": "http://x/s.jpg", "thumbnail": "http://x/t.jpg"}
		},
		"accessInfo": {"embeddable": false}
	}`
	var v Volume
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	b := v.Summary()
	if b.ID != "v1" || b.Title != "Bumi" {
		t.Fatalf("unexpected summary %+v", b)
	}
	if b.Thumbnail != "https://x/t.jpg" {
		t.Errorf("thumbnail = %q, want https upgrade", b.Thumbnail)
	}
	if b.PageCount == nil || *b.PageCount != 440 {
		t.Errorf("page count = %v", b.PageCount)
	}
	if b.AverageRating == nil || *b.AverageRating != 4 {
		t.Errorf("rating = %v", b.AverageRating)
	}
	if b.Embeddable == nil || b.IsEmbeddable() {
		t.Errorf("embeddable = %v, want explicit false", b.Embeddable)
	}
}

func TestVolumeSummaryMissingFields(t *testing.T) {
	b := Volume{ID: "v2"}.Summary()
	if b.Thumbnail != "" || b.AverageRating != nil || b.Embeddable != nil || b.Authors != nil {
		t.Fatalf("expected empty optional fields, got %+v", b)
	}
	if b.IsEmbeddable() {
		t.Error("unknown embeddability must not count as embeddable")
	}
}

func TestSecureURLKeepsHTTPS(t *testing.T) {
	if got := secureURL("https://x/a.jpg"); got != "https://x/a.jpg" {
		t.Errorf("secureURL = %q", got)
	}
	if got := secureURL(""); got != "" {
		t.Errorf("secureURL(empty) = %q", got)
	}
}

func TestClone(t *testing.T) {
	rating, pages, embed := 3.5, 120, true
	orig := BookSummary{
		ID:            "c1",
		Authors:       []string{"A"},
		Categories:    []string{"Fiction"},
		AverageRating: &rating,
		PageCount:     &pages,
		Embeddable:    &embed,
	}

	dup := orig.Clone()
	dup.Authors[0] = "B"
	dup.Categories[0] = "History"
	*dup.AverageRating = 1
	*dup.PageCount = 1
	*dup.Embeddable = false

	if orig.Authors[0] != "A" || orig.Categories[0] != "Fiction" {
		t.Errorf("slices shared with clone: %+v", orig)
	}
	if rating != 3.5 || pages != 120 || !embed {
		t.Errorf("pointers shared with clone")
	}
}
