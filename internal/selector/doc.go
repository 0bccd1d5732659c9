// Package selector picks the link a reader "getting to Philosophy" would
// click first in a paragraph.
//
// A candidate is any element met during a pre-order walk of the paragraph.
// It is selected when no parenthesis is open at that point and it passes the
// validity checks, evaluated in order:
//
//   - it is an "a" element
//   - neither it nor any ancestor up to the paragraph root is an "i" element
//   - its resolved target lives on the encyclopedia host
//
// Parentheses are tracked with one running counter per paragraph: "(" adds
// one, ")" subtracts one, and the counter is never reset between subtrees or
// clamped at zero. This is the historical rule and is kept as is.
//
// # Usage
//
//	sel, err := selector.New("https://en.wikipedia.org")
//	next, ok := sel.SelectFirstValidLink(paragraph)
package selector
