package ui

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type loggedInMsg struct {
	user   *User
	client *Client
}

type postsLoadedMsg struct{ posts []Post }

type postLoadedMsg struct{ post *Post }

type likedMsg struct{ post *Post }

// PostSelectedMsg opens the detail view of a post.
type PostSelectedMsg struct{ ID string }

// BackToListMsg returns from the detail view to the post list.
type BackToListMsg struct{}
