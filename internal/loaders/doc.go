// Package loaders extracts plain text from policy documents before
// indexing. Loaders are selected by file extension; anything
// unrecognised is treated as plain text so the pipeline never refuses
// a readable file.
package loaders
