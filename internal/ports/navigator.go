package ports

// Navigator abstracts the host application's navigation surface. The session
// manager uses it to send the user to the login entry point after a session
// clear, preserving the location to return to after re-authentication.
type Navigator interface {
	// CurrentPath returns the location the user is at right now.
	CurrentPath() string
	// NavigateTo moves to path; returnTo, when non-empty, is the location to
	// restore after a successful re-authentication.
	NavigateTo(path, returnTo string)
}

// NopNavigator is a Navigator that does nothing; the default for embedders
// without a navigation surface.
type NopNavigator struct{}

func (NopNavigator) CurrentPath() string    { return "" }
func (NopNavigator) NavigateTo(_, _ string) {}
