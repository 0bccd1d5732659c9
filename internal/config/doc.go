// Package config provides configuration structures and utilities for the
// philosophy command. It defines the encyclopedia site, the start and target
// articles, HTTP settings, crawl politeness and report preferences, and loads
// them from an optional YAML file.
package config
