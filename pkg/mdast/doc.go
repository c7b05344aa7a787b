// Package mdast provides the syntax tree produced by the mdtouch Markdown parser.
//
// A tree is lossless with respect to the source it was parsed from:
//   - every node records the byte range it covers in its source string
//   - the children of a composite node tile the parent's range without gaps
//   - leaf nodes carry their raw text; composite nodes carry structure only
//
// Nodes are a tagged variant: the Kind field says what the node is and
// callers switch on it rather than relying on per-kind types.
package mdast
