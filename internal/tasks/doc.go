// package tasks implements the extraction and enrichment pipeline.
//
// The core abstraction is Engine, which sequences source resolution, generative
// extraction, response parsing, and catalog enrichment into one operation.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks
