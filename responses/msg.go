package responses

// ErrorBody is the body of every failed API call
type ErrorBody struct {
	Error string `json:"error"`
}
