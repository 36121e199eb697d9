// Package layout infers document structure from raw text and cell grids.
//
// Plain text headings are found by an ordered list of rules ([HeadingRules]):
// all-caps lines, short lines ending in a colon, numbered lines, and lines
// underlined by a run of = - * _ characters. The first matching rule names
// the heading type.
//
// Word-processor headings are recognized by style name ([StyleHeadingLevel]).
//
// Tables get a header and record view when their first row is a header
// ([BuildTable]). PDF pages only receive an advisory table count
// ([EstimateTables]) because the text layer carries no table boundaries.
package layout
