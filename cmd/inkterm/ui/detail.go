package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type DetailModel struct {
	Client *Client
	PostID string
	Post   *Post
	Body   viewport.Model
	Status string
	Err    error
}

func NewDetailModel(c *Client, postID string, width, height int) DetailModel {
	vp := viewport.New(max(width-4, 20), max(height-8, 5))
	vp.Style = lipgloss.NewStyle().PaddingLeft(1)
	return DetailModel{Client: c, PostID: postID, Body: vp}
}

func (m DetailModel) Init() tea.Cmd {
	c, id := m.Client, m.PostID
	return func() tea.Msg {
		p, err := c.GetPost(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return postLoadedMsg{post: p}
	}
}

func (m DetailModel) like() tea.Cmd {
	c, id := m.Client, m.PostID
	return func() tea.Msg {
		p, err := c.Like(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return likedMsg{post: p}
	}
}

// renderPost lays out the body followed by the comment thread.
func renderPost(p *Post) string {
	var b strings.Builder
	b.WriteString(metaStyle.Render(fmt.Sprintf("by %s on %s, %d likes",
		p.AuthorName(), p.CreatedAt.Format("2006-01-02 15:04"), p.Likes)))
	b.WriteString("\n\n")
	b.WriteString(p.Content)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Comments (%d)\n", len(p.Comments)))
	for _, c := range p.Comments {
		name := "?"
		if c.Author != nil {
			name = c.Author.Username
		}
		b.WriteString("\n" + commentAuthorStyle.Render(name) + " " + metaStyle.Render(c.CreatedAt.Format("2006-01-02 15:04")) + "\n")
		b.WriteString(c.Content + "\n")
	}
	return b.String()
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case postLoadedMsg:
		m.Post = msg.post
		m.Err = nil
		m.Body.SetContent(renderPost(msg.post))
		return m, nil
	case likedMsg:
		if m.Post != nil {
			m.Post.Likes = msg.post.Likes
			m.Body.SetContent(renderPost(m.Post))
		}
		m.Status = "Liked."
		return m, nil
	case errMsg:
		m.Err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "l":
			m.Status = ""
			return m, m.like()
		case "esc", "backspace", "q":
			return m, func() tea.Msg { return BackToListMsg{} }
		}
	}

	var cmd tea.Cmd
	m.Body, cmd = m.Body.Update(msg)
	return m, cmd
}

func (m DetailModel) View() string {
	var b strings.Builder
	title := "Loading..."
	if m.Post != nil {
		title = m.Post.Title
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(m.Body.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("'l' to like, up/down to scroll, Esc to go back"))
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
