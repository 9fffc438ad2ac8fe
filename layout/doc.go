// Package layout groups positioned OCR words into text lines and
// partitions those lines into header, body and footer regions.
//
// Segmentation is pure geometry: words whose vertical centers fall within
// a tolerance band of each other form a line, lines are ordered top to
// bottom, and regions are assigned by relative vertical position on the
// page. When the page height is unknown, all lines fall into the body.
package layout
