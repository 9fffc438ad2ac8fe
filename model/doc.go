// Package model provides the shared data structures for document
// intelligence results.
//
// This package defines the user-facing types that every pipeline stage
// consumes and produces. All segmentation, classification, extraction and
// detection operations ultimately construct these types, making them the
// primary API for consuming results.
//
// # Token Model
//
// OCR output is represented as positioned tokens:
//
//   - [Word] - one recognized token with confidence and bounding box
//   - [TextLine] - an ordered run of words sharing a horizontal band
//
// # Layout
//
// The [DocumentLayout] type captures the spatial organization of a page:
// header, body and footer line regions plus any detected tables.
//
// # Tables
//
// The [Table] type represents a detected grid. Cells are always rectangular:
// every row has exactly Cols entries and missing cells hold empty strings.
//
// # Results
//
// The [Intelligence] type is the pipeline's final record: document type,
// type confidence, layout, extracted fields and timing. It serializes to
// JSON and round-trips losslessly except for the observational
// ProcessingTime field.
//
// # Geometry
//
// [BBox] and [Point] support position calculations in page pixel
// coordinates with the origin in the upper-left corner, matching the
// coordinate system reported by OCR engines.
package model
