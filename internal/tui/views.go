package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"whoami/app/internal/tui/theme"
)

func (m Model) View() string {
	table := theme.Table(m.colors.Current(), m.prefs.Resolved())

	titleStyle := lipgloss.NewStyle().Foreground(table.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(table.Muted)
	bodyStyle := lipgloss.NewStyle().Foreground(table.Foreground)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("whoami"))
	b.WriteString(mutedStyle.Render("  ·  0 home · 1 posts · 2 projects · 3 resume · 4 contact · ctrl+k palette · t theme · q quit"))
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n\n")
	}

	if m.loading && m.spinnerShown {
		b.WriteString(m.spinner.View())
		b.WriteString(mutedStyle.Render(" loading..."))
		b.WriteString("\n\n")
	}

	switch m.page {
	case pageHome:
		b.WriteString(m.homeView(titleStyle, bodyStyle, mutedStyle))
	case pagePosts:
		b.WriteString(m.postsView(titleStyle, bodyStyle, mutedStyle))
	case pagePostDetail:
		b.WriteString(m.postDetailView(titleStyle, bodyStyle, mutedStyle))
	case pageProjects:
		b.WriteString(m.projectsView(titleStyle, bodyStyle, mutedStyle))
	case pageProjectDetail:
		b.WriteString(m.projectDetailView(titleStyle, bodyStyle, mutedStyle))
	case pageResume:
		b.WriteString(m.resumeView(titleStyle, bodyStyle, mutedStyle))
	case pageContact:
		b.WriteString(m.contactView(titleStyle, bodyStyle, mutedStyle, errorStyle))
	}

	if m.palette.Visible() {
		b.WriteString("\n\n")
		b.WriteString(m.palette.View())
	}

	return b.String()
}

func (m Model) homeView(title, body, muted lipgloss.Style) string {
	lines := []string{
		title.Render("Welcome"),
		"",
		body.Render("A terminal window into my corner of the internet."),
		body.Render("Browse posts, projects, and the resume with the number keys."),
		"",
		muted.Render(fmt.Sprintf("theme: %s (%s) · accent: %s",
			m.prefs.Preference(), m.prefs.Resolved(), m.colors.Current())),
	}
	return strings.Join(lines, "\n")
}

func (m Model) postsView(title, body, muted lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(title.Render("Posts"))
	b.WriteString("\n\n")

	if m.posts == nil {
		b.WriteString(muted.Render("Nothing loaded yet."))
		return b.String()
	}

	if len(m.posts.Data) == 0 {
		b.WriteString(muted.Render("No posts on this page."))
	}

	for i, post := range m.posts.Data {
		cursor := "  "
		if i == m.postCursor {
			cursor = "▸ "
		}
		b.WriteString(body.Render(cursor + post.Title))
		b.WriteString(muted.Render("  " + post.ReadingTime))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("page %d of %d (%d posts) · ←/→ page · enter open",
		m.posts.Meta.Page, m.posts.Meta.TotalPages, m.posts.Meta.Total)))

	return b.String()
}

func (m Model) postDetailView(title, body, muted lipgloss.Style) string {
	if m.postDetail == nil {
		return muted.Render("Loading post...")
	}

	var b strings.Builder
	b.WriteString(title.Render(m.postDetail.Title))
	b.WriteString("\n")
	b.WriteString(muted.Render(m.postDetail.ReadingTime))
	if len(m.postDetail.Tags) > 0 {
		b.WriteString(muted.Render(" · " + strings.Join(m.postDetail.Tags, ", ")))
	}
	b.WriteString("\n\n")
	b.WriteString(body.Render(m.postDetail.Content))
	b.WriteString("\n\n")
	b.WriteString(muted.Render("esc back"))

	return b.String()
}

func (m Model) projectsView(title, body, muted lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(title.Render("Projects"))
	b.WriteString("\n\n")

	if m.projects == nil {
		b.WriteString(muted.Render("Nothing loaded yet."))
		return b.String()
	}

	for i, project := range m.projects.Data {
		cursor := "  "
		if i == m.projectCursor {
			cursor = "▸ "
		}
		name := project.Name
		if project.Featured {
			name = "★ " + name
		}
		b.WriteString(body.Render(cursor + name))
		b.WriteString("\n")
		b.WriteString(muted.Render("    " + project.Excerpt))
		if len(project.TechStack) > 0 {
			b.WriteString(muted.Render("  [" + strings.Join(project.TechStack, ", ") + "]"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("page %d of %d · ←/→ page · enter open",
		m.projects.Meta.Page, m.projects.Meta.TotalPages)))

	return b.String()
}

func (m Model) projectDetailView(title, body, muted lipgloss.Style) string {
	if m.projectDetail == nil {
		return muted.Render("Loading project...")
	}

	var b strings.Builder
	name := m.projectDetail.Name
	if m.projectDetail.Featured {
		name = "★ " + name
	}
	b.WriteString(title.Render(name))
	b.WriteString("\n")
	if len(m.projectDetail.TechStack) > 0 {
		b.WriteString(muted.Render(strings.Join(m.projectDetail.TechStack, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(body.Render(m.projectDetail.Description))
	b.WriteString("\n")
	if m.projectDetail.URL != "" {
		b.WriteString("\n")
		b.WriteString(muted.Render(m.projectDetail.URL))
	}
	if m.projectDetail.GithubURL != "" {
		b.WriteString("\n")
		b.WriteString(muted.Render(m.projectDetail.GithubURL))
	}
	b.WriteString("\n\n")
	b.WriteString(muted.Render("esc back"))

	return b.String()
}

func (m Model) resumeView(title, body, muted lipgloss.Style) string {
	if m.resume == nil {
		return muted.Render("Nothing loaded yet.")
	}

	var b strings.Builder
	b.WriteString(title.Render(m.resume.Name))
	b.WriteString("\n")
	b.WriteString(body.Render(m.resume.Title))
	b.WriteString("\n\n")

	if m.resume.Summary != "" {
		b.WriteString(body.Render(m.resume.Summary))
		b.WriteString("\n\n")
	}

	if len(m.resume.Skills) > 0 {
		b.WriteString(title.Render("Skills"))
		b.WriteString("\n")
		for _, group := range m.resume.Skills {
			b.WriteString(body.Render(group.Category + ": "))
			b.WriteString(muted.Render(strings.Join(group.Items, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.resume.Experience) > 0 {
		b.WriteString(title.Render("Experience"))
		b.WriteString("\n")
		for _, entry := range m.resume.Experience {
			period := entry.StartDate.Format("Jan 2006") + " – "
			if entry.Current {
				period += "present"
			} else if entry.EndDate != nil {
				period += entry.EndDate.Format("Jan 2006")
			}
			b.WriteString(body.Render(entry.Title + " at " + entry.Company))
			b.WriteString(muted.Render("  " + period))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.resume.Education) > 0 {
		b.WriteString(title.Render("Education"))
		b.WriteString("\n")
		for _, entry := range m.resume.Education {
			b.WriteString(body.Render(entry.Degree + ", " + entry.Institution))
			b.WriteString(muted.Render(fmt.Sprintf("  %d–%d", entry.StartYear, entry.EndYear)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.resume.Certifications) > 0 {
		b.WriteString(title.Render("Certifications"))
		b.WriteString("\n")
		for _, entry := range m.resume.Certifications {
			b.WriteString(body.Render(entry.Name))
			b.WriteString(muted.Render(fmt.Sprintf("  %d", entry.Year)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) contactView(title, body, muted, errorStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(title.Render("Contact"))
	b.WriteString("\n\n")

	if m.contact.sent {
		b.WriteString(body.Render("Message sent successfully"))
		b.WriteString("\n\n")
	}
	if m.contact.errText != "" {
		b.WriteString(errorStyle.Render(m.contact.errText))
		b.WriteString("\n\n")
	}

	b.WriteString(muted.Render("Name"))
	b.WriteString("\n")
	b.WriteString(m.contact.name.View())
	b.WriteString("\n\n")
	b.WriteString(muted.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.contact.email.View())
	b.WriteString("\n\n")
	b.WriteString(muted.Render("Message"))
	b.WriteString("\n")
	b.WriteString(m.contact.message.View())
	b.WriteString("\n\n")

	if m.contact.sending {
		b.WriteString(muted.Render("Sending..."))
	} else {
		b.WriteString(muted.Render("tab next field · ctrl+s send · esc back"))
	}

	return b.String()
}
