package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"whoami/app/internal/apiclient"
)

// spinnerDelay defers the loading indicator so fast responses never flicker.
const spinnerDelay = 150 * time.Millisecond

const requestTimeout = 15 * time.Second

type postsLoadedMsg struct {
	page int
	list *apiclient.PostList
	err  error
}

type postDetailLoadedMsg struct {
	post *apiclient.Post
	err  error
}

type projectsLoadedMsg struct {
	page int
	list *apiclient.ProjectList
	err  error
}

type projectDetailLoadedMsg struct {
	project *apiclient.Project
	err     error
}

type resumeLoadedMsg struct {
	resume *apiclient.Resume
	err    error
}

type contactSubmittedMsg struct {
	err error
}

type versionCheckedMsg struct{}

type showSpinnerMsg struct {
	token int
}

// ThemeChangedMsg is sent from outside the event loop when the resolved
// theme key changes (OS watcher), forcing a redraw.
type ThemeChangedMsg struct{}

func (m Model) loadPosts(page int) tea.Cmd {
	cacheKey := fmt.Sprintf("posts:%d", page)

	return func() tea.Msg {
		var cached apiclient.PostList
		if m.cache.Get(cacheKey, &cached) {
			return postsLoadedMsg{page: page, list: &cached}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		list, err := m.client.Posts(ctx, page)
		if err != nil {
			return postsLoadedMsg{page: page, err: err}
		}

		m.cache.Set(cacheKey, list)
		return postsLoadedMsg{page: page, list: list}
	}
}

func (m Model) loadPostDetail(slugOrID string) tea.Cmd {
	cacheKey := "post:" + slugOrID

	return func() tea.Msg {
		var cached apiclient.Post
		if m.cache.Get(cacheKey, &cached) {
			return postDetailLoadedMsg{post: &cached}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		post, err := m.client.Post(ctx, slugOrID)
		if err != nil {
			return postDetailLoadedMsg{err: err}
		}

		m.cache.Set(cacheKey, post)
		return postDetailLoadedMsg{post: post}
	}
}

func (m Model) loadProjects(page int) tea.Cmd {
	cacheKey := fmt.Sprintf("projects:%d", page)

	return func() tea.Msg {
		var cached apiclient.ProjectList
		if m.cache.Get(cacheKey, &cached) {
			return projectsLoadedMsg{page: page, list: &cached}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		list, err := m.client.Projects(ctx, page)
		if err != nil {
			return projectsLoadedMsg{page: page, err: err}
		}

		m.cache.Set(cacheKey, list)
		return projectsLoadedMsg{page: page, list: list}
	}
}

func (m Model) loadProjectDetail(slugOrID string) tea.Cmd {
	cacheKey := "project:" + slugOrID

	return func() tea.Msg {
		var cached apiclient.Project
		if m.cache.Get(cacheKey, &cached) {
			return projectDetailLoadedMsg{project: &cached}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		project, err := m.client.Project(ctx, slugOrID)
		if err != nil {
			return projectDetailLoadedMsg{err: err}
		}

		m.cache.Set(cacheKey, project)
		return projectDetailLoadedMsg{project: project}
	}
}

func (m Model) loadResume() tea.Cmd {
	return func() tea.Msg {
		var cached apiclient.Resume
		if m.cache.Get("resume", &cached) {
			return resumeLoadedMsg{resume: &cached}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resume, err := m.client.Resume(ctx)
		if err != nil {
			return resumeLoadedMsg{err: err}
		}

		m.cache.Set("resume", resume)
		return resumeLoadedMsg{resume: resume}
	}
}

func (m Model) submitContact(submission apiclient.ContactSubmission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return contactSubmittedMsg{err: m.client.SubmitContact(ctx, submission)}
	}
}

// checkVersion runs once per session start. It never blocks other queries
// and never fails loudly: a broken network just means stale cache.
func (m Model) checkVersion() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		m.cache.CheckVersion(ctx, m.client.Version)
		return versionCheckedMsg{}
	}
}

func deferSpinner(token int) tea.Cmd {
	return tea.Tick(spinnerDelay, func(time.Time) tea.Msg {
		return showSpinnerMsg{token: token}
	})
}
