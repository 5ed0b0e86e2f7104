// Package response holds the wire shapes shared by every handler: plain
// JSON bodies, never an envelope, with real HTTP status codes.
package response

// Err is the uniform failure body, {"error": "..."}.
type Err struct {
	Error string `json:"error"`
}

// Msg is the confirmation body for operations with nothing else to return.
type Msg struct {
	Message string `json:"message"`
}

// Canonical messages. The client matches on these strings, keep them stable.
const (
	MsgInternal     = "Internal Server Error"
	MsgUserNotFound = "User not found"
	MsgFieldsNeeded = "All fields are required"
	MsgTokenNeeded  = "Token is required"
	MsgInvalidID    = "Invalid user id"
	MsgUserDeleted  = "User was deleted!"
)

func Error(msg string) Err { return Err{Error: msg} }
func Message(msg string) Msg { return Msg{Message: msg} }
