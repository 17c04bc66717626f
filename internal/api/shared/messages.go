package shared

// Client-facing messages. These strings are part of the API contract.
const (
	MsgNoToken            = "No token, authorization denied"
	MsgTokenInvalid       = "Token is not valid"
	MsgInvalidCredentials = "Invalid credentials"
	MsgNotAuthorized      = "User not authorized"
	MsgProductNotFound    = "Product not found"
	MsgProductRemoved     = "Product removed"
	MsgUserNotFound       = "User not found"
	MsgNotFound           = "Resource not found"
	MsgEmailExists        = "Email already exists"
	MsgUsernameExists     = "Username already exists"
	MsgAlreadyExists      = "Resource already exists"
	MsgInvalidEntity      = "Invalid entity data"
	MsgInvalidRequest     = "Invalid request format"
	MsgServerError        = "Server error"
)
