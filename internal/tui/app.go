package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"whoami/app/internal/apiclient"
	"whoami/app/internal/tui/cache"
	"whoami/app/internal/tui/palette"
	"whoami/app/internal/tui/theme"
)

type page int

const (
	pageHome page = iota
	pagePosts
	pagePostDetail
	pageProjects
	pageProjectDetail
	pageResume
	pageContact
)

// Model is the root bubbletea model for the portfolio browser.
type Model struct {
	client *apiclient.Client
	cache  *cache.Cache
	prefs  *theme.PreferenceStore
	colors *theme.ColorStore
	logger *logrus.Logger

	page    page
	palette palette.Model
	spinner spinner.Model
	contact contactForm

	loading      bool
	spinnerShown bool
	loadToken    int

	posts         *apiclient.PostList
	postsPage     int
	postCursor    int
	postDetail    *apiclient.Post
	projects      *apiclient.ProjectList
	projectsPage  int
	projectCursor int
	projectDetail *apiclient.Project
	resume        *apiclient.Resume

	errText string
	width   int
	height  int
}

// Options wires the root model's dependencies.
type Options struct {
	Client      *apiclient.Client
	Cache       *cache.Cache
	Preferences *theme.PreferenceStore
	Colors      *theme.ColorStore
	Logger      *logrus.Logger
}

// NewModel builds the root model.
func NewModel(opts Options) (Model, error) {
	if opts.Client == nil {
		return Model{}, eris.New("api client is required")
	}
	if opts.Cache == nil {
		return Model{}, eris.New("query cache is required")
	}
	if opts.Preferences == nil || opts.Colors == nil {
		return Model{}, eris.New("theme stores are required")
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:       opts.Client,
		cache:        opts.Cache,
		prefs:        opts.Preferences,
		colors:       opts.Colors,
		logger:       opts.Logger,
		palette:      palette.New(opts.Preferences, opts.Colors),
		spinner:      sp,
		contact:      newContactForm(),
		postsPage:    1,
		projectsPage: 1,
	}, nil
}

// Init kicks off the session: the version check runs alongside the first
// page load rather than blocking it.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkVersion(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case showSpinnerMsg:
		if m.loading && msg.token == m.loadToken {
			m.spinnerShown = true
		}
		return m, nil

	case postsLoadedMsg:
		m.loading = false
		m.spinnerShown = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			return m, nil
		}
		m.errText = ""
		m.posts = msg.list
		m.postsPage = msg.page
		if m.postCursor >= len(msg.list.Data) {
			m.postCursor = 0
		}
		return m, nil

	case postDetailLoadedMsg:
		m.loading = false
		m.spinnerShown = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			m.page = pagePosts
			return m, nil
		}
		m.errText = ""
		m.postDetail = msg.post
		return m, nil

	case projectsLoadedMsg:
		m.loading = false
		m.spinnerShown = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			return m, nil
		}
		m.errText = ""
		m.projects = msg.list
		m.projectsPage = msg.page
		if m.projectCursor >= len(msg.list.Data) {
			m.projectCursor = 0
		}
		return m, nil

	case projectDetailLoadedMsg:
		m.loading = false
		m.spinnerShown = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			m.page = pageProjects
			return m, nil
		}
		m.errText = ""
		m.projectDetail = msg.project
		return m, nil

	case resumeLoadedMsg:
		m.loading = false
		m.spinnerShown = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
			return m, nil
		}
		m.errText = ""
		m.resume = msg.resume
		return m, nil

	case contactSubmittedMsg:
		m.contact.sending = false
		if msg.err != nil {
			m.contact.errText = friendlyError(msg.err)
			return m, nil
		}
		m.contact = m.contact.reset()
		return m, nil

	case versionCheckedMsg:
		return m, nil

	case ThemeChangedMsg:
		return m, nil

	case palette.NavigateMsg:
		return m.navigate(msg.Target)

	case palette.ClosedMsg:
		return m, nil
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The palette swallows all keys while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "ctrl+k" {
		m.palette = m.palette.Open()
		return m, nil
	}

	// Text entry fields on the contact page get everything except the
	// handful of form-control keys.
	if m.page == pageContact {
		return m.handleContactKey(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "0":
		return m.navigate("home")
	case "1":
		return m.navigate("posts")
	case "2":
		return m.navigate("projects")
	case "3":
		return m.navigate("resume")
	case "4":
		return m.navigate("contact")
	case "t":
		m.prefs.Toggle()
		return m, nil
	}

	switch m.page {
	case pagePosts:
		return m.handlePostsKey(key)
	case pagePostDetail:
		if key == "esc" || key == "backspace" {
			m.page = pagePosts
			m.postDetail = nil
		}
		return m, nil
	case pageProjects:
		return m.handleProjectsKey(key)
	case pageProjectDetail:
		if key == "esc" || key == "backspace" {
			m.page = pageProjects
			m.projectDetail = nil
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handlePostsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.postCursor > 0 {
			m.postCursor--
		}
	case "down", "j":
		if m.posts != nil && m.postCursor < len(m.posts.Data)-1 {
			m.postCursor++
		}
	case "enter":
		if m.posts != nil && m.postCursor < len(m.posts.Data) {
			m.page = pagePostDetail
			return m.startLoad(m.loadPostDetail(m.posts.Data[m.postCursor].Slug))
		}
	case "right", "n":
		if m.posts != nil && m.postsPage < m.posts.Meta.TotalPages {
			return m.startLoad(m.loadPosts(m.postsPage + 1))
		}
	case "left", "p":
		if m.postsPage > 1 {
			return m.startLoad(m.loadPosts(m.postsPage - 1))
		}
	}
	return m, nil
}

func (m Model) handleProjectsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.projectCursor > 0 {
			m.projectCursor--
		}
	case "down", "j":
		if m.projects != nil && m.projectCursor < len(m.projects.Data)-1 {
			m.projectCursor++
		}
	case "enter":
		if m.projects != nil && m.projectCursor < len(m.projects.Data) {
			m.page = pageProjectDetail
			return m.startLoad(m.loadProjectDetail(m.projects.Data[m.projectCursor].Slug))
		}
	case "right", "n":
		if m.projects != nil && m.projectsPage < m.projects.Meta.TotalPages {
			return m.startLoad(m.loadProjects(m.projectsPage + 1))
		}
	case "left", "p":
		if m.projectsPage > 1 {
			return m.startLoad(m.loadProjects(m.projectsPage - 1))
		}
	}
	return m, nil
}

func (m Model) handleContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate("home")
	case "tab":
		m.contact = m.contact.nextField()
		return m, nil
	case "ctrl+s":
		if m.contact.sending {
			return m, nil
		}
		m.contact.sending = true
		m.contact.errText = ""
		return m, m.submitContact(m.contact.submission())
	}

	var cmd tea.Cmd
	m.contact, cmd = m.contact.update(msg)
	return m, cmd
}

func (m Model) navigate(target string) (tea.Model, tea.Cmd) {
	m.errText = ""

	switch target {
	case "posts":
		m.page = pagePosts
		if m.posts == nil {
			return m.startLoad(m.loadPosts(m.postsPage))
		}
	case "projects":
		m.page = pageProjects
		if m.projects == nil {
			return m.startLoad(m.loadProjects(m.projectsPage))
		}
	case "resume":
		m.page = pageResume
		if m.resume == nil {
			return m.startLoad(m.loadResume())
		}
	case "contact":
		m.page = pageContact
		m.contact = newContactForm()
	default:
		m.page = pageHome
	}

	return m, nil
}

// startLoad marks a request outstanding and schedules the deferred spinner.
// The token ties the spinner to this specific load so a stale tick from an
// already-finished request cannot resurrect it.
func (m Model) startLoad(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = true
	m.spinnerShown = false
	m.loadToken++
	return m, tea.Batch(cmd, deferSpinner(m.loadToken))
}

func friendlyError(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Something went wrong. Check your connection and try again."
}
