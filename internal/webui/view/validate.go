package view

import "regexp"

// Validation messages shown next to the fields. Tests pin these exactly.
const (
	MsgUsernameRequired = "Username is required."
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Please enter a valid email address."
	MsgTokenRequired    = "Token is required."
	MsgTokenTooShort    = "Token should be at least 6 characters long."
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate runs the field rules on a draft. A non-zero result means the
// submission is blocked before any request is made.
func Validate(d Draft) FieldErrors {
	var errs FieldErrors

	if d.Username == "" {
		errs.Username = MsgUsernameRequired
	}

	switch {
	case d.Email == "":
		errs.Email = MsgEmailRequired
	case !emailRe.MatchString(d.Email):
		errs.Email = MsgEmailInvalid
	}

	switch {
	case d.Token == "":
		errs.Token = MsgTokenRequired
	case len(d.Token) < 6:
		errs.Token = MsgTokenTooShort
	}

	return errs
}
