package exifmeta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"crawlkit/internal/model"
)

func TestExtractorCanProcess(t *testing.T) {
	t.Parallel()

	e := New(http.DefaultClient)
	ctx := context.Background()
	roCtx := model.NewCrawlingContext().ReadOnly()

	cases := []struct {
		raw  string
		want bool
	}{
		{"https://example.com/photo.jpg", true},
		{"https://example.com/photo.JPEG?w=200", true},
		{"https://example.com/photo.tiff", true},
		{"https://example.com/page.html", false},
		{"ftp://example.com/photo.jpg", false},
		{"not a url", false},
	}

	for _, tc := range cases {
		input := model.CrawlingInput{RawInput: tc.raw}
		if got := e.CanProcess(ctx, input, roCtx); got != tc.want {
			t.Errorf("CanProcess(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestExtractorProcessNoExifDataYieldsNoRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("not actually a jpeg with exif data"))
	}))
	defer server.Close()

	e := New(server.Client())
	input := model.CrawlingInput{RawInput: server.URL + "/photo.jpg"}
	roCtx := model.NewCrawlingContext().ReadOnly()

	output, err := e.Process(context.Background(), input, roCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Data) != 0 {
		t.Errorf("got %d records, want 0 for image with no recoverable EXIF data", len(output.Data))
	}
}

func TestExtractorProcessOversizedImageYieldsNoRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Length", "999999999")
		_, _ = w.Write([]byte("irrelevant"))
	}))
	defer server.Close()

	e := New(server.Client(), WithMaxImageSize(1024))
	input := model.CrawlingInput{RawInput: server.URL + "/photo.jpg"}
	roCtx := model.NewCrawlingContext().ReadOnly()

	output, err := e.Process(context.Background(), input, roCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Data) != 0 {
		t.Errorf("got %d records, want 0 for oversized image", len(output.Data))
	}
}

func TestExtractorOutputCarriesInputAndStartedBy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("not a real image"))
	}))
	defer server.Close()

	e := New(server.Client())
	startedBy := model.Source{Name: "webfetch", ID: "webfetch.Fetcher"}
	input := model.CrawlingInput{Source: startedBy, RawInput: server.URL + "/photo.jpg"}
	roCtx := model.NewCrawlingContext().ReadOnly()

	output, err := e.Process(context.Background(), input, roCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Input != input.RawInput {
		t.Errorf("got Input %q, want %q", output.Input, input.RawInput)
	}
	if output.StartedBy != startedBy {
		t.Errorf("got StartedBy %v, want %v", output.StartedBy, startedBy)
	}
}
