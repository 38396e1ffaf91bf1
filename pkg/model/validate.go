package model

import (
	"fmt"
	"unicode"
)

type errorString string

func (e errorString) Error() string {
	return string(e)
}

// InvalidRef is returned for a reference path that does not parse
const InvalidRef errorString = "invalid ref"

// ValidateBranchName enforces the branch naming rules: non-empty,
// letters, digits and underscores only, and none of the reserved tree
// names.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("empty field: branch name is empty")
	}
	for i, c := range name {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && c != '_' {
			return fmt.Errorf("invalid name: branch name:%s contains unsupported character %q",
				name,
				string([]rune(name)[i]))
		}
	}
	if isReservedTree(name) {
		return fmt.Errorf("invalid name: %q is a reserved keyword", name)
	}
	return nil
}

// ValidateCommitMessage rejects empty commit messages
func ValidateCommitMessage(message string) error {
	if message == "" {
		return fmt.Errorf("empty field: commit message is empty")
	}
	return nil
}
