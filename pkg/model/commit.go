package model

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// CommitMetadata describes a commit, stored as JSON inside the
// committed head.
type CommitMetadata struct {
	Message   string    `json:"message" yaml:"message"`
	Author    string    `json:"author" yaml:"author"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	IsMerge   bool      `json:"is_merge" yaml:"is_merge"`
	IsReplay  bool      `json:"is_replay,omitempty" yaml:"is_replay,omitempty"`
	_         struct{}
}

// NewCommitMetadata stamps metadata for a commit made now
func NewCommitMetadata(message, author string, isMerge bool) *CommitMetadata {
	return &CommitMetadata{
		Message:   message,
		Author:    author,
		Timestamp: time.Now().UTC(),
		IsMerge:   isMerge,
	}
}

// UnmarshalCommitMetadata unmarshals commit metadata from a JSON
// descriptor
func UnmarshalCommitMetadata(b []byte) (*CommitMetadata, error) {
	if b == nil {
		return nil, fmt.Errorf("received nil commit metadata to unmarshal")
	}
	var m CommitMetadata
	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &m)
	return &m, err
}

// MarshalCommitMetadata marshals commit metadata as a JSON descriptor
func MarshalCommitMetadata(m *CommitMetadata) ([]byte, error) {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(m)
	return b, err
}
