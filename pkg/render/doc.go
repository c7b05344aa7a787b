// Package render turns parsed blocks into presentation-neutral render
// instructions.
//
// Inline content becomes a sequence of styled Runs. Block nodes become Items
// (headings, paragraphs, lists, code blocks, dividers and blank separators)
// which a front end such as the terminal preview draws however it likes.
package render
