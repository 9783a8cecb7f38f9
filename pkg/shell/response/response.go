// Package response defines the command-result value the shell renders to
// the user, along with the formatting flags that control exactly which
// bytes accompany the message.
package response

// Response is a plain value type; callers are free to mutate its flags
// after construction via the helper constructors below.
type Response struct {
	Message            string
	PrefixNewline      bool
	IndentMessage      bool
	PostfixNewline     bool
	InlineMessage      bool
	ShowPrompt         bool
	ExcludeFromHistory bool
}

// defaults returns the baseline flag set shared by Success/Error/Empty:
// newlines and indent on, inline off, prompt shown, included in history.
func defaults() Response {
	return Response{
		PrefixNewline:  true,
		IndentMessage:  true,
		PostfixNewline: true,
		ShowPrompt:     true,
	}
}

// Success builds a Response carrying a successful command's output.
func Success(msg string) Response {
	r := defaults()
	r.Message = msg
	return r
}

// Error builds a Response carrying an error message, with the same flags
// as Success. The shell keeps a line out of history when its dispatch
// returns an error; a Response built here and returned by a Handler with
// a nil error is recorded in history like any other.
func Error(msg string) Response {
	r := defaults()
	r.Message = msg
	return r
}

// Empty builds a Response with no message that still redraws the prompt.
func Empty() Response {
	return defaults()
}
