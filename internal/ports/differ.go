package ports

// Differ describes how a document changes for dry runs.
type Differ interface {
	// LineDiff renders changed lines prefixed with "+" or "-" and unchanged
	// context lines prefixed with a space. It returns "" when nothing changed.
	LineDiff(before, after string) string
	// MergePatch returns the RFC 7396 merge patch turning before into after.
	// Both inputs may be YAML or JSON.
	MergePatch(before, after []byte) ([]byte, error)
}
