package contract

// Result is the envelope every caller-facing operation returns. Business
// failures (denied, not found, already exists) come back with Success false
// and a populated Message or Error; they never abort the transaction.
// Response carries the transaction ID as the write receipt on mutations.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Data     string `json:"data,omitempty"`
	Response string `json:"response,omitempty"`
}

func failure(message string) *Result {
	return &Result{Success: false, Message: message}
}

func failureErr(errText string) *Result {
	return &Result{Success: false, Error: errText}
}
