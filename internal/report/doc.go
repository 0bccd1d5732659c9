// Package report renders the outcome of a conjecture run.
//
// Writers for different output formats:
//   - SimpleWriter: plain text transcript ending in "Success" or "Failure"
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub flavored Markdown with a path table
//
// Writers implement the Writer interface and can be combined with
// MultiWriter.
package report
