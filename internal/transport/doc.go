// Package transport builds *http.Client instances for processors that
// fetch remote resources. A Client wraps an optional SOCKS5 proxy dialer
// and produces HTTP clients with sane pooling, redirect, and cookie
// defaults; per-processor header and cookie injection is layered on top
// without touching the shared transport.
package transport
