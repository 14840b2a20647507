// Package rules implements the built-in block classification rules and
// inline filters of gomarkup.
//
// The production precedence is DefaultOrder:
//
//	list, listitem, title, table, tablerow, heading, paragraph
//
// The list and table gates always match but never classify a block; they
// only open and close the container around consecutive items or rows, and
// let the paired leaf rule render the block itself. Title must come before
// heading so the first heading-shaped block becomes the document title,
// and paragraph must come last because it matches everything.
//
// Rules register themselves with markup.DefaultRegistry during init().
package rules
