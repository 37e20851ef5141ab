// Package emailaddr provides an InputProcessor that extracts email
// addresses from arbitrary text inputs. Extracted addresses are terminal
// identity data and are never marked crawlable.
package emailaddr
