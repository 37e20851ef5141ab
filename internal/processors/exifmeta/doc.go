// Package exifmeta provides an InputProcessor that downloads image URLs
// and extracts EXIF metadata (GPS coordinates, camera identification,
// authorship, timestamps) from them. Extracted metadata is terminal
// identity data and is never marked crawlable.
package exifmeta
