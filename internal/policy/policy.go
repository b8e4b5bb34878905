// Package policy decides which users may act on which records.
package policy

import (
	"github.com/kanjidojo/kanji-backend/internal/common"
	"github.com/kanjidojo/kanji-backend/internal/domain"
)

// Action a guarded operation on a record
type Action string

const (
	ActionShow    Action = "show"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
	ActionCreate  Action = "create"
)

// Policy answers authorization questions for records of type T.
// Implementations must be pure: no I/O, no state.
type Policy[T any] interface {
	CanShow(user *domain.User, record *T) bool
	CanUpdate(user *domain.User, record *T) bool
	CanDestroy(user *domain.User, record *T) bool
	CanCreate(user *domain.User, record *T) bool
}

// Allowed evaluates a single action
func Allowed[T any](p Policy[T], action Action, user *domain.User, record *T) bool {
	switch action {
	case ActionShow:
		return p.CanShow(user, record)
	case ActionUpdate:
		return p.CanUpdate(user, record)
	case ActionDestroy:
		return p.CanDestroy(user, record)
	case ActionCreate:
		return p.CanCreate(user, record)
	}
	return false
}

// Authorize returns common.ErrForbidden when action is not allowed
func Authorize[T any](p Policy[T], action Action, user *domain.User, record *T) error {
	if !Allowed(p, action, user, record) {
		return common.ErrForbidden
	}
	return nil
}
