// Package webfetch provides an InputProcessor that fetches http(s) URLs
// and extracts outbound links, images, and scripts from HTML responses.
// Discovered links are marked crawlable so the engine re-feeds them into
// the frontier; embedded resource URLs are stored but not re-crawled.
package webfetch
