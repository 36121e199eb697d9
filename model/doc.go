// Package model provides the format-independent representation of an
// extracted document.
//
// # Document Structure
//
// A [Document] holds metadata, aggregate counters and an ordered list of
// [Unit] values. A unit is a PDF page, a spreadsheet sheet, or the whole of a
// DOCX or plain text file.
//
// # Elements
//
// Unit content is classified into values implementing [Element]:
//
//   - [Paragraph] - text paragraphs with a word count
//   - [Heading] - headings with a level
//   - [Table] - tables of [Cell] values with header and record views
//
// Embedded images are described by [ImageRef]; image bytes are never kept.
//
// # JSON
//
// [Document.MarshalJSON] emits the stable aggregate fields (total_words,
// total_images, total_tables, ocr_used) for every format, followed by a
// format-specific view: pages, sheets, or paragraphs.
package model
