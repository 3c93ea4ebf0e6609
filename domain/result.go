package domain

// Error codes surfaced in mutation results.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeBadRequest = "BAD_REQUEST"
	CodeDuplicate  = "DUPLICATE"
)

// Error is a user-visible mutation failure. Expected failures such as a
// missing id are reported here, never as a transport-level error.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NotFoundError builds the error returned when a target id does not
// resolve to a stored item.
func NotFoundError(message string) *Error {
	return &Error{Message: message, Code: CodeNotFound}
}

// ItemResult is the outcome of a single-item mutation. Exactly one of
// Error and Item is populated.
type ItemResult struct {
	Error *Error    `json:"error"`
	Item  *TodoItem `json:"item"`
}

// ItemsResult is the outcome of a bulk mutation. Error and Items are
// mutually exclusive; a bulk delete that matched nothing succeeds with
// an empty Items slice.
type ItemsResult struct {
	Error *Error     `json:"error"`
	Items []TodoItem `json:"items"`
}
