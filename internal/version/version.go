package version

const Value = "1.0.0"

// ServerHeader is the Server header value sent by the HTTP API.
func ServerHeader() string {
	return "storyscan/" + Value
}

// UserAgent identifies storyscan when fetching remote feeds.
func UserAgent() string {
	return "storyscan/" + Value + " (content quality scanner)"
}
