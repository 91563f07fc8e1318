package api

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseEndpoint_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseEndpoint("")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.String() != DefaultEndpoint {
		t.Fatalf("endpoint = %q, want %q", u.String(), DefaultEndpoint)
	}

	u, err = parseEndpoint("example.com/books/v1/volumes?q=x#frag")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.Scheme != "https" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("endpoint not normalized: %q", u.String())
	}
	if u.Path != "/books/v1/volumes" {
		t.Fatalf("path = %q, want /books/v1/volumes", u.Path)
	}
}

func TestParseEndpoint_MissingHost(t *testing.T) {
	if _, err := parseEndpoint("https://"); err == nil {
		t.Fatalf("parseEndpoint returned nil error, want missing host error")
	}
}

func TestClient_SearchEncodesQueryAndMapsItems(t *testing.T) {
	t.Parallel()

	var gotQuery, gotLimit, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("maxResults")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 2,
			"items": [
				{
					"id": "abc",
					"volumeInfo": {
						"title": "Laskar Pelangi",
						"authors": ["Andrea Hirata"],
						"averageRating": 4.5,
						"pageCount": 529,
						"imageLinks": {"thumbnail": "http://books.example/cover.jpg"},
						"previewLink": "https://books.example/preview"
					},
					"accessInfo": {"embeddable": true}
				},
				{"id": "def", "volumeInfo": {"title": "Bumi"}}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/books/v1/volumes", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	books, err := c.Search(ctx, "  harry potter  ", DefaultMaxResults)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery != "harry potter" {
		t.Fatalf("q = %q, want %q", gotQuery, "harry potter")
	}
	if gotLimit != "24" {
		t.Fatalf("maxResults = %q, want 24", gotLimit)
	}
	if !strings.HasPrefix(gotUserAgent, "sanpustaka-t/") {
		t.Fatalf("User-Agent = %q, want sanpustaka-t/*", gotUserAgent)
	}
	if len(books) != 2 {
		t.Fatalf("len(books) = %d, want 2", len(books))
	}

	first := books[0]
	if first.ID != "abc" || first.Title != "Laskar Pelangi" {
		t.Fatalf("first book = %#v", first)
	}
	if first.Thumbnail != "https://books.example/cover.jpg" {
		t.Fatalf("Thumbnail = %q, want https upgrade", first.Thumbnail)
	}
	if first.AverageRating == nil || *first.AverageRating != 4.5 {
		t.Fatalf("AverageRating = %v, want 4.5", first.AverageRating)
	}
	if !first.IsEmbeddable() {
		t.Fatalf("IsEmbeddable = false, want true")
	}

	second := books[1]
	if second.AverageRating != nil || second.PageCount != nil || second.Embeddable != nil {
		t.Fatalf("second book optional fields should be absent: %#v", second)
	}
}

func TestClient_SearchWithoutItemsReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"kind":"books#volumes","totalItems":0}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	books, err := c.Search(context.Background(), "zzzz", 0)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if books == nil || len(books) != 0 {
		t.Fatalf("books = %#v, want empty non-nil slice", books)
	}
}

func TestClient_SearchRejectsEmptyQuery(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Search(context.Background(), "   ", 24); err == nil {
		t.Fatalf("Search returned nil error, want error for empty query")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "broken":
			_, _ = w.Write([]byte("{not-json"))
		case "quota":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Daily limit exceeded"}}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Search(context.Background(), "broken", 24)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Search error = %v, want decode response error", err)
	}

	_, err = c.Search(context.Background(), "quota", 24)
	if err == nil || !strings.Contains(err.Error(), "Daily limit exceeded") {
		t.Fatalf("Search error = %v, want api message", err)
	}

	_, err = c.Search(context.Background(), "other", 24)
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("Search error = %v, want status 500 error", err)
	}
}

func TestClient_FetchCoverDecodesImage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cover.png" {
			http.NotFound(w, r)
			return
		}
		img := image.NewRGBA(image.Rect(0, 0, 4, 6))
		img.Set(1, 1, color.RGBA{R: 255, A: 255})
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, img)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	img, err := c.FetchCover(context.Background(), server.URL+"/cover.png")
	if err != nil {
		t.Fatalf("FetchCover returned error: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 6 {
		t.Fatalf("bounds = %v, want 4x6", img.Bounds())
	}

	if _, err := c.FetchCover(context.Background(), server.URL+"/missing.png"); err == nil {
		t.Fatalf("FetchCover returned nil error for 404")
	}
}
