package view

import "user-console/internal/user"

// Action is a discrete transition applied to the State by Reduce.
type Action interface{ isAction() }

type (
	// UsersLoaded replaces the mirror after a successful list fetch.
	UsersLoaded struct{ Users []user.User }
	// LoadFailed marks the initial fetch as failed; rendered distinctly
	// from "zero users".
	LoadFailed struct{}

	OpenCreate struct{}
	OpenEdit   struct{ User user.User }
	CloseModal struct{}

	// SubmitInvalid keeps the modal open with per-field messages.
	SubmitInvalid struct {
		Draft  Draft
		Errors FieldErrors
	}
	// Created appends the server's user to the mirror and closes the modal.
	Created struct{ User user.User }
	// Updated replaces the matching entry and closes the modal.
	Updated struct{ User user.User }

	OpenDelete  struct{ ID int64 }
	CloseDelete struct{}
	// Deleted removes the entry and closes the confirmation.
	Deleted struct{ ID int64 }

	// MutationFailed is a create/update/delete rejection; the open modal
	// stays open and the failure becomes a visible flash line.
	MutationFailed struct{ Message string }
	DismissFlash   struct{}
)

func (UsersLoaded) isAction()    {}
func (LoadFailed) isAction()     {}
func (OpenCreate) isAction()     {}
func (OpenEdit) isAction()       {}
func (CloseModal) isAction()     {}
func (SubmitInvalid) isAction()  {}
func (Created) isAction()        {}
func (Updated) isAction()        {}
func (OpenDelete) isAction()     {}
func (CloseDelete) isAction()    {}
func (Deleted) isAction()        {}
func (MutationFailed) isAction() {}
func (DismissFlash) isAction()   {}

// Reduce returns the next State. The input is never mutated; the Users
// slice is copied before any change so old snapshots stay valid.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case UsersLoaded:
		s.Users = a.Users
		s.Loading = false
		s.LoadFailed = false

	case LoadFailed:
		s.Users = nil
		s.Loading = false
		s.LoadFailed = true

	case OpenCreate:
		s.Modal = ModalCreate
		s.Draft = Draft{}
		s.Errors = FieldErrors{}
		s.Flash = ""

	case OpenEdit:
		s.Modal = ModalEdit
		s.Draft = Draft{ID: a.User.ID, Username: a.User.Username, Email: a.User.Email, Token: a.User.Token}
		s.Errors = FieldErrors{}
		s.Flash = ""

	case CloseModal:
		s.Modal = ModalNone
		s.Draft = Draft{}
		s.Errors = FieldErrors{}

	case SubmitInvalid:
		s.Draft = a.Draft
		s.Errors = a.Errors

	case Created:
		s.Users = append(cloneUsers(s.Users), a.User)
		s.Modal = ModalNone
		s.Draft = Draft{}
		s.Errors = FieldErrors{}

	case Updated:
		users := cloneUsers(s.Users)
		for i := range users {
			if users[i].ID == a.User.ID {
				users[i] = a.User
			}
		}
		s.Users = users
		s.Modal = ModalNone
		s.Draft = Draft{}
		s.Errors = FieldErrors{}

	case OpenDelete:
		s.Modal = ModalDelete
		s.DeleteID = a.ID
		s.Flash = ""

	case CloseDelete:
		s.Modal = ModalNone
		s.DeleteID = 0

	case Deleted:
		users := make([]user.User, 0, len(s.Users))
		for _, u := range s.Users {
			if u.ID != a.ID {
				users = append(users, u)
			}
		}
		s.Users = users
		s.Modal = ModalNone
		s.DeleteID = 0

	case MutationFailed:
		s.Flash = a.Message

	case DismissFlash:
		s.Flash = ""
	}
	return s
}

func cloneUsers(in []user.User) []user.User {
	out := make([]user.User, len(in))
	copy(out, in)
	return out
}
