package response

// Message is the body of every error and of bodyless successes.
type Message struct {
	Message string `json:"message"`
}

func Msg(m string) Message { return Message{Message: m} }

// Error builds a failure body. An empty customMsg falls back to CodeMsgMap.
func Error(code int, customMsg string) Message {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Message{Message: msg}
}
