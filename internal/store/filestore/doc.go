// Package filestore provides a processor.ResultStore that writes one
// indented JSON file per result to a directory, named by id. This is the
// reference on-disk shape described by the external store contract.
package filestore
