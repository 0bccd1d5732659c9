// Package main provides the entry point for the philosophy CLI.
//
// philosophy tests the "Getting to Philosophy" conjecture: starting at an
// encyclopedia article it keeps following the first valid link of the body
// text and reports whether the walk reaches the Philosophy article.
//
// Usage:
//
//	philosophy run [article]
//	philosophy init
//
// See --help for all available options.
package main

func main() {
	Execute()
}
