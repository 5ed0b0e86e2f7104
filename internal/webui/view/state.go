// Package view models the console screen as an immutable state machine:
// a State snapshot, a set of Actions, and a pure Reduce. Network effects
// live in the caller; their outcomes re-enter as Actions, so every screen
// the console can show is a value a test can construct and assert on.
package view

import "user-console/internal/user"

type Modal string

const (
	ModalNone   Modal = ""
	ModalCreate Modal = "create"
	ModalEdit   Modal = "edit"
	ModalDelete Modal = "delete"
)

// Draft is the in-progress form before validation and submission.
type Draft struct {
	ID       int64
	Username string
	Email    string
	Token    string
}

type FieldErrors struct {
	Username string
	Email    string
	Token    string
}

func (e FieldErrors) Any() bool {
	return e.Username != "" || e.Email != "" || e.Token != ""
}

// State is one snapshot of the console. Users mirrors the last successful
// fetch plus optimistic updates; nothing reconciles drift from writers the
// console did not see.
type State struct {
	Users      []user.User
	Loading    bool
	LoadFailed bool
	Flash      string
	Modal      Modal
	Draft      Draft
	Errors     FieldErrors
	DeleteID   int64
}

func Initial() State {
	return State{Loading: true}
}
