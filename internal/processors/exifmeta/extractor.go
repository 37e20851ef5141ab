package exifmeta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	exif "github.com/dsoprea/go-exif/v3"

	"crawlkit/internal/model"
)

const sourceID = "exifmeta.Extractor"

// Source is this processor's stable identity.
var Source = model.Source{Name: "exifmeta", ID: sourceID}

const defaultMaxImageSize = 5 * 1024 * 1024

// imageExtPattern matches the image formats go-exif can parse.
var imageExtPattern = regexp.MustCompile(`(?i)\.(jpe?g|tiff?|heic)(?:\?[^"'\s]*)?$`)

// tagCategory classifies an EXIF tag into the kind of identity leak it
// represents.
var tagCategory = map[string]string{
	"GPSLatitude":        "gps",
	"GPSLongitude":       "gps",
	"GPSLatitudeRef":     "gps",
	"GPSLongitudeRef":    "gps",
	"Make":               "camera",
	"Model":              "camera",
	"SerialNumber":       "serial",
	"CameraSerialNumber": "serial",
	"BodySerialNumber":   "serial",
	"LensSerialNumber":   "serial",
	"Software":           "software",
	"ProcessingSoftware": "software",
	"Artist":             "author",
	"Author":             "author",
	"Copyright":          "author",
	"XPAuthor":           "author",
	"DateTimeOriginal":   "datetime",
	"DateTimeDigitized":  "datetime",
	"DateTime":           "datetime",
	"HostComputer":       "computer",
}

// Extractor is an InputProcessor that fetches image URLs and extracts
// their EXIF metadata.
type Extractor struct {
	client       *http.Client
	maxImageSize int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxImageSize bounds the number of bytes downloaded per image.
func WithMaxImageSize(n int64) Option {
	return func(e *Extractor) { e.maxImageSize = n }
}

// New returns an Extractor that fetches images with client.
func New(client *http.Client, opts ...Option) *Extractor {
	e := &Extractor{client: client, maxImageSize: defaultMaxImageSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Source implements processor.InputProcessor.
func (e *Extractor) Source() model.Source { return Source }

// CanProcess implements processor.InputProcessor: accepts http(s) URLs
// whose path looks like a JPEG, TIFF, or HEIC image.
func (e *Extractor) CanProcess(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) bool {
	u, err := url.Parse(input.RawInput)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return imageExtPattern.MatchString(input.RawInput)
}

// Process implements processor.InputProcessor.
func (e *Extractor) Process(ctx context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) (model.Output, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.RawInput, nil)
	if err != nil {
		return model.Output{}, fmt.Errorf("exifmeta: build request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return model.Output{}, fmt.Errorf("exifmeta: fetch %s: %w", input.RawInput, err)
	}
	defer resp.Body.Close()

	if resp.ContentLength > e.maxImageSize {
		return model.Output{
			Source:    Source,
			StartedBy: input.Source,
			Input:     input.RawInput,
			Timestamp: time.Now().UnixMilli(),
		}, nil
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, e.maxImageSize))
	if err != nil {
		return model.Output{}, fmt.Errorf("exifmeta: read body: %w", err)
	}

	records := extractRecords(imageData)

	return model.Output{
		Source:    Source,
		StartedBy: input.Source,
		Input:     input.RawInput,
		Data:      records,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// extractRecords parses EXIF entries from imageData, returning one
// record per tag of interest. Images with no recoverable EXIF data
// yield no records rather than an error.
func extractRecords(imageData []byte) []model.Record {
	rawExif, err := exif.SearchAndExtractExif(imageData)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	var records []model.Record
	for _, entry := range entries {
		category, ok := tagCategory[entry.TagName]
		if !ok {
			continue
		}
		records = append(records, model.NewRecord(
			model.F("category", model.Uncrawlable(category)),
			model.F("tag", model.Uncrawlable(entry.TagName)),
			model.F("value", model.Uncrawlable(entry.Formatted)),
		))
	}
	return records
}
