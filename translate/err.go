package translate

import "fmt"

// errorComment is the failure output: translation never raises to the
// caller, a parse error becomes a two-line comment instead.
func errorComment(bash string, err error) string {
	return fmt.Sprintf("# TRANSPILE ERROR: %v\n# Original: %s", err, bash)
}

// placeholder marks a construct we refuse to guess at. The original text
// rides along in a comment so the output stays inspectable.
func placeholder(original, reason string) string {
	return fmt.Sprintf("# %s: %s", reason, original)
}
