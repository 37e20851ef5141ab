// Package cryptoaddr provides an InputProcessor that extracts
// cryptocurrency addresses from arbitrary text inputs. Extracted
// addresses are terminal identity data and are never marked crawlable.
package cryptoaddr
