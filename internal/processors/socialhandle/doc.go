// Package socialhandle provides an InputProcessor that extracts social
// media profile links and @handle mentions from arbitrary text inputs.
// Extracted values are terminal identity data and are never marked
// crawlable.
package socialhandle
