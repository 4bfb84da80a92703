package main

// Report output formats.
const (
	FormatText     = "text"
	FormatLines    = "lines"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Valid report formats.
var validFormats = []string{FormatText, FormatLines, FormatJSON, FormatCSV, FormatMarkdown}
