// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/Flammans/artanova/internal/models"
)

// StaticToken is a TokenSource returning a fixed value.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// ArtworkPage builds a page of artworks with ids [from, to] inclusive.
func ArtworkPage(from, to int) []models.Artwork {
	if to < from {
		return []models.Artwork{}
	}
	page := make([]models.Artwork, 0, to-from+1)
	for id := from; id <= to; id++ {
		page = append(page, models.Artwork{
			ID:      id,
			Title:   "artwork",
			Type:    "painting",
			Preview: "https://img.test/preview.jpg",
		})
	}
	return page
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertArtworkIDs(t *testing.T, artworks []models.Artwork, want []int) {
	t.Helper()
	if len(artworks) != len(want) {
		t.Fatalf("expected %d artworks, got %d", len(want), len(artworks))
	}
	for i, artwork := range artworks {
		if artwork.ID != want[i] {
			t.Errorf("artwork %d: expected id %d, got %d", i, want[i], artwork.ID)
		}
	}
}
