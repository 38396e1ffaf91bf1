package model

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// FileMetadata is the per-file bookkeeping the workspace sync keeps so
// that unchanged files are never re-hashed
type FileMetadata struct {
	// Timestamp is the file's mtime in nanoseconds
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

// FilesMetadata maps repo-relative file paths to their bookkeeping
type FilesMetadata map[string]FileMetadata

// UnmarshalFilesMetadata unmarshals metadata from a JSON descriptor.
// A nil or empty descriptor yields an empty map.
func UnmarshalFilesMetadata(b []byte) (FilesMetadata, error) {
	m := FilesMetadata{}
	if len(b) == 0 {
		return m, nil
	}
	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &m)
	return m, err
}

// MarshalFilesMetadata marshals metadata as a JSON descriptor
func MarshalFilesMetadata(m FilesMetadata) ([]byte, error) {
	if m == nil {
		m = FilesMetadata{}
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(m)
}

// Clone returns an independent copy
func (m FilesMetadata) Clone() FilesMetadata {
	out := make(FilesMetadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Under keeps only the entries at or below pth. An empty pth keeps
// everything.
func (m FilesMetadata) Under(pth string) FilesMetadata {
	out := FilesMetadata{}
	for k, v := range m {
		if PathIsUnder(k, pth) {
			out[k] = v
		}
	}
	return out
}

// ReplaceUnder drops every entry at or below pth and copies in the
// matching entries from src instead
func (m FilesMetadata) ReplaceUnder(pth string, src FilesMetadata) FilesMetadata {
	out := FilesMetadata{}
	for k, v := range m {
		if !PathIsUnder(k, pth) {
			out[k] = v
		}
	}
	for k, v := range src {
		if PathIsUnder(k, pth) {
			out[k] = v
		}
	}
	return out
}

// PathIsUnder reports whether pth equals base or sits below it. An
// empty base contains every path.
func PathIsUnder(pth, base string) bool {
	if base == "" || base == "." {
		return true
	}
	return pth == base || strings.HasPrefix(pth, base+"/")
}
