// Package chunk defines the shared types for fetching named binary resources:
// the resource identifier, the error taxonomy and the Reader interface that
// every backend implements.
package chunk

// ResourceID names a requested resource.
//
// It is an opaque value: no normalization, case folding or path sanitization
// is applied. File-backed readers treat it as a path relative to their root,
// the HTTP reader treats it as a URL.
type ResourceID struct {
	id string
}

// NewResourceID returns a ResourceID wrapping s.
func NewResourceID(s string) ResourceID {
	return ResourceID{id: s}
}

// String returns the underlying identifier text.
func (r ResourceID) String() string {
	return r.id
}

// IsZero reports whether the identifier is empty.
func (r ResourceID) IsZero() bool {
	return r.id == ""
}
