// Package tables detects tables in page images from their ruled grid
// lines.
//
// Detection is purely geometric: a line scanner finds strong horizontal
// and vertical segments, aligned segments are clustered into candidate
// row and column boundaries, and a boundary set with enough well-formed
// intersections becomes a table. Cell contents are then filled from the
// document layout by assigning each word to the cell containing its
// center.
//
// Pages without ruled tables, noisy scans and blank images all yield an
// empty result rather than an error.
package tables
