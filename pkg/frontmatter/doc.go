// Package frontmatter splits Markdown sources into an optional YAML header
// and a body, and formats headers back for generated files.
//
// A header is a block that starts the file with a "---" line and ends with
// the next "---" line. Only the name and description keys matter to mush;
// they are accepted when their YAML value is a string or a number.
//
//	f, err := frontmatter.Extract(content, "deploy")
//	if err != nil {
//		// the header could not be decoded; f still carries the fallback
//		// name and the split body
//	}
//
// # Error Handling
//
// [ErrInvalidHeader] is returned (wrapped) when the delimiters are present but
// the YAML between them cannot be decoded into a map.
package frontmatter
