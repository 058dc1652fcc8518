package response

import "net/http"

// CodeMsgMap holds the fallback message per HTTP status.
var CodeMsgMap = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusRequestEntityTooLarge: "Request body too large",
	http.StatusInternalServerError:   "Server error",
	http.StatusServiceUnavailable:    "Server busy",
}
