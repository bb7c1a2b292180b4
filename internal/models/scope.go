package models

import "fmt"

type Scope string

const (
	ScopeUser      Scope = "user"
	ScopeWorkspace Scope = "workspace"
)

// Tag is the persisted partition key prefix of the scope.
func (s Scope) Tag() string {
	switch s {
	case ScopeUser:
		return "USR"
	case ScopeWorkspace:
		return "WSP"
	default:
		panic(fmt.Sprintf("invalid Scope: %q", s))
	}
}
