package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type PostsModel struct {
	Client *Client
	Table  table.Model
	Posts  []Post
	Err    error
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

func NewPostsModel(c *Client, height int) PostsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: 40},
			{Title: "Author", Width: 16},
			{Title: "Likes", Width: 6},
			{Title: "Published", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 5)),
	)
	t.SetStyles(tableStyles())
	return PostsModel{Client: c, Table: t}
}

func (m PostsModel) Init() tea.Cmd {
	return m.load()
}

func (m PostsModel) load() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		posts, err := c.ListPosts(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return postsLoadedMsg{posts: posts}
	}
}

// postRows renders posts as table rows in list order.
func postRows(posts []Post) []table.Row {
	rows := make([]table.Row, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, table.Row{
			p.Title,
			p.AuthorName(),
			strconv.FormatInt(p.Likes, 10),
			p.CreatedAt.Format("2006-01-02"),
		})
	}
	return rows
}

func (m PostsModel) Update(msg tea.Msg) (PostsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		m.Posts = msg.posts
		m.Err = nil
		m.Table.SetRows(postRows(msg.posts))
		return m, nil
	case errMsg:
		m.Err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.load()
		case "enter":
			i := m.Table.Cursor()
			if i >= 0 && i < len(m.Posts) {
				id := m.Posts[i].ID
				return m, func() tea.Msg { return PostSelectedMsg{ID: id} }
			}
		case "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m PostsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("inkpost - Published posts") + "\n\n")
	if len(m.Posts) == 0 && m.Err == nil {
		b.WriteString(metaStyle.Render("No posts yet.") + "\n")
	} else {
		b.WriteString(m.Table.View())
	}
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Enter to open, 'r' to refresh, 'q' to quit"))
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
