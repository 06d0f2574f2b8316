package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	statePosts
	stateDetail
)

type RootModel struct {
	State    state
	Client   *Client
	User     *User
	Login    LoginModel
	Posts    PostsModel
	Detail   DetailModel
	Quitting bool
	width    int
	height   int
}

func NewRootModel(server string) RootModel {
	return RootModel{
		State: stateLogin,
		Login: NewLoginModel(server),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Posts.Table.SetHeight(max(msg.Height-8, 5))
		m.Detail.Body.Width = max(msg.Width-4, 20)
		m.Detail.Body.Height = max(msg.Height-8, 5)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case loggedInMsg:
		m.Client = msg.client
		m.User = msg.user
		m.State = statePosts
		m.Posts = NewPostsModel(m.Client, m.height)
		return m, m.Posts.Init()

	case PostSelectedMsg:
		m.State = stateDetail
		m.Detail = NewDetailModel(m.Client, msg.ID, m.width, m.height)
		return m, m.Detail.Init()

	case BackToListMsg:
		m.State = statePosts
		// likes may have changed
		return m, m.Posts.Init()
	}

	var cmd tea.Cmd
	switch m.State {
	case stateLogin:
		m.Login, cmd = m.Login.Update(msg)
	case statePosts:
		m.Posts, cmd = m.Posts.Update(msg)
	case stateDetail:
		m.Detail, cmd = m.Detail.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	var header string
	if m.User != nil {
		header = blurredStyle.Render("Signed in as "+m.User.Username+" ("+m.User.Role+")") + "\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case statePosts:
		return header + m.Posts.View()
	case stateDetail:
		return header + m.Detail.View()
	}
	return "Unknown state"
}
