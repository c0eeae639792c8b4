// Package green implements a lossless, hash-consed syntax tree: an
// immutable, atomically reference-counted tree whose tokens carry the exact
// source text they cover, whose nodes carry only a kind tag and their
// children, and whose construction cache deduplicates structurally equal
// subtrees. Concatenating every token's text in left-to-right order
// reproduces the original input exactly.
//
// The tree itself never interprets Kind; a consumer's parser assigns kinds
// and drives construction through a Builder (the interning cache) or a
// TreeBuilder (the stack-oriented constructor built on top of it).
package green
