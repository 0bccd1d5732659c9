// Package model defines the data structures shared by the selector, the
// crawler and the report writers.
//
// This package contains the following main types:
//   - Node: a text or element node of a rendered article body
//   - Paragraph: an ordered sequence of node trees forming one body block
//   - Article: a fetched page with its ordered paragraphs
//   - Run: the transcript and terminal state of one conjecture test
//
// Page identifiers are plain strings in canonical form; see Canonicalize.
package model
