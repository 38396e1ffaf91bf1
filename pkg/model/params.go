package model

import (
	jsoniter "github.com/json-iterator/go"
)

// Params are the namespace-global settings, kept as JSON at the top of
// the layout
type Params struct {
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
	_      struct{}
}

// UnmarshalParams unmarshals global parameters from a JSON descriptor.
// A nil or empty descriptor yields zero parameters.
func UnmarshalParams(b []byte) (*Params, error) {
	var p Params
	if len(b) == 0 {
		return &p, nil
	}
	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &p)
	return &p, err
}

// MarshalParams marshals global parameters as a JSON descriptor
func MarshalParams(p *Params) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(p)
}
