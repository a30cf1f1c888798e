package content

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seed populates an empty database with starter content so a fresh install
// serves something. It is a no-op when any content already exists.
func Seed(ctx context.Context, conn *gorm.DB, logger *logrus.Logger) error {
	if conn == nil {
		return eris.New("gorm DB is required")
	}

	repo, err := NewRepository(conn, logger)
	if err != nil {
		return err
	}

	exists, err := repo.HasContent(ctx)
	if err != nil {
		return eris.Wrap(err, "checking for existing content")
	}
	if exists {
		return nil
	}

	if logger != nil {
		logger.WithField("component", "content.seed").Info("seeding empty database")
	}

	now := time.Now()
	weeksAgo := func(weeks int) *time.Time {
		stamp := now.AddDate(0, 0, -7*weeks)
		return &stamp
	}

	projects := []Project{
		{
			Slug:        "portfolio-tui",
			Name:        "Portfolio TUI",
			Excerpt:     "A terminal-based portfolio viewer with keyboard navigation and theming.",
			Description: "A terminal portfolio viewer built on the Charm stack. Elm-architecture state management, a command palette, and accent-color theming, all talking to the content API over REST.",
			TechStack:   []string{"Go", "BubbleTea", "Lipgloss", "REST"},
			GithubURL:   "https://github.com/example/portfolio-tui",
			Featured:    true,
			PublishedAt: weeksAgo(1),
		},
		{
			Slug:        "portfolio-api",
			Name:        "Portfolio API",
			Excerpt:     "The JSON backend powering every portfolio surface.",
			Description: "The read-mostly JSON API behind the portfolio: paginated posts and projects, a structured resume document, a rate-limited contact form, and a content fingerprint the clients use for cache invalidation.",
			TechStack:   []string{"Go", "SQLite", "REST"},
			GithubURL:   "https://github.com/example/portfolio-api",
			Featured:    true,
			PublishedAt: weeksAgo(1),
		},
		{
			Slug:        "task-flow",
			Name:        "Task Flow",
			Excerpt:     "A kanban-style task board with real-time updates.",
			Description: "A kanban board experiment with optimistic drag-and-drop and WebSocket diff broadcasting between connected clients.",
			TechStack:   []string{"React", "TypeScript", "PostgreSQL"},
			URL:         "https://taskflow.example.com",
			PublishedAt: weeksAgo(8),
		},
	}

	for i := range projects {
		if err := conn.WithContext(ctx).Create(&projects[i]).Error; err != nil {
			return eris.Wrapf(err, "seeding project %s", projects[i].Slug)
		}
	}

	posts := []Post{
		{
			Slug:        "building-a-terminal-ui-with-go-and-bubble-tea",
			Title:       "Building a Terminal UI with Go and Bubble Tea",
			Excerpt:     "How the Elm architecture makes complex terminal state manageable.",
			Content:     "Recently I've been exploring terminal user interfaces, and Bubble Tea has completely changed how I think about CLI applications.\n\nThe framework follows the Elm architecture: a Model holding state, an Update function reacting to messages, and a View rendering the state as a string. The elegance of this pattern really shines when building complex, stateful applications.\n\nI built a portfolio viewer that fetches data from a JSON API and renders it in the terminal, complete with navigation, theming, and a command palette.",
			Tags:        []string{"go", "tui", "bubbletea"},
			ProjectID:   &projects[0].ID,
			PublishedAt: weeksAgo(2),
		},
		{
			Slug:        "cache-invalidation-that-actually-works",
			Title:       "Cache Invalidation That Actually Works",
			Excerpt:     "A single content fingerprint beats per-record timestamps.",
			Content:     "The portfolio clients persist their query cache locally, which raises the classic question: when do you throw it away?\n\nInstead of comparing every record, the API exposes one opaque fingerprint derived from the newest modification time across all content tables. The client fetches it on startup; if it differs from the last-seen value, the whole cache is dropped and everything refetches. If the check itself fails, the client silently keeps serving stale data, which for a portfolio is strictly better than an error page.",
			Tags:        []string{"caching", "api-design"},
			ProjectID:   &projects[1].ID,
			PublishedAt: weeksAgo(4),
		},
		{
			Slug:        "rate-limiting-a-contact-form",
			Title:       "Rate Limiting a Contact Form",
			Excerpt:     "Fixed windows are all a portfolio needs.",
			Content:     "The contact form is the only write path in the whole API, and the only abuse vector. A fixed-window counter keyed by client IP, five requests per fifteen minutes, stops drive-by spam without any external infrastructure.\n\nIt lives in process memory, which means it resets on deploy and cannot be shared across instances. For a single-process portfolio server that trade-off is fine, and it is documented rather than hidden.",
			Tags:        []string{"go", "http"},
			PublishedAt: weeksAgo(6),
		},
		{
			Slug:  "drafts-stay-invisible",
			Title: "Drafts Stay Invisible",
			Content: "This one is a draft: no publish timestamp, so it never leaves the API. " +
				"Useful for checking the filters on a fresh install.",
			Tags: []string{"meta"},
		},
	}

	for i := range posts {
		if err := conn.WithContext(ctx).Create(&posts[i]).Error; err != nil {
			return eris.Wrapf(err, "seeding post %s", posts[i].Slug)
		}
	}

	resume := Resume{
		Slug:        PrimaryResumeSlug,
		Name:        "Alex Developer",
		Title:       "Software Engineer",
		Summary:     "Backend-leaning engineer who enjoys small sharp tools, boring reliable services, and terminals that look good.",
		Email:       "alex@example.com",
		Location:    "Berlin, Germany",
		GithubURL:   "https://github.com/example",
		LinkedinURL: "https://linkedin.com/in/example",
		WebsiteURL:  "https://example.com",
		Interests:   []string{"terminal UIs", "distributed systems", "coffee"},
		PublishedAt: weeksAgo(1),
	}
	if err := conn.WithContext(ctx).Create(&resume).Error; err != nil {
		return eris.Wrap(err, "seeding resume")
	}

	skills := []ResumeSkill{
		{ResumeID: resume.ID, Category: "Languages", Name: "Go", SortOrder: 0, PublishedAt: weeksAgo(1)},
		{ResumeID: resume.ID, Category: "Languages", Name: "TypeScript", SortOrder: 1, PublishedAt: weeksAgo(1)},
		{ResumeID: resume.ID, Category: "Languages", Name: "Ruby", SortOrder: 2, PublishedAt: weeksAgo(1)},
		{ResumeID: resume.ID, Category: "Infrastructure", Name: "PostgreSQL", SortOrder: 3, PublishedAt: weeksAgo(1)},
		{ResumeID: resume.ID, Category: "Infrastructure", Name: "Docker", SortOrder: 4, PublishedAt: weeksAgo(1)},
	}
	for i := range skills {
		if err := conn.WithContext(ctx).Create(&skills[i]).Error; err != nil {
			return eris.Wrap(err, "seeding resume skills")
		}
	}

	start := now.AddDate(-3, 0, 0)
	experience := ResumeExperience{
		ResumeID:    resume.ID,
		Title:       "Senior Software Engineer",
		Company:     "Example GmbH",
		Location:    "Berlin",
		StartDate:   start,
		Current:     true,
		Highlights:  []string{"Built the content platform serving three client surfaces", "Cut p99 API latency by 40%"},
		PublishedAt: weeksAgo(1),
	}
	if err := conn.WithContext(ctx).Create(&experience).Error; err != nil {
		return eris.Wrap(err, "seeding resume experience")
	}

	resumeProject := ResumeProject{
		ResumeID:     resume.ID,
		Name:         "Portfolio TUI",
		Description:  "Terminal portfolio client with theming and a command palette.",
		Technologies: []string{"Go", "BubbleTea"},
		ProjectID:    &projects[0].ID,
		PublishedAt:  weeksAgo(1),
	}
	if err := conn.WithContext(ctx).Create(&resumeProject).Error; err != nil {
		return eris.Wrap(err, "seeding resume project")
	}

	education := ResumeEducation{
		ResumeID:    resume.ID,
		Degree:      "BSc Computer Science",
		Institution: "Example University",
		StartYear:   2014,
		EndYear:     2018,
		PublishedAt: weeksAgo(1),
	}
	if err := conn.WithContext(ctx).Create(&education).Error; err != nil {
		return eris.Wrap(err, "seeding resume education")
	}

	certification := ResumeCertification{
		ResumeID:    resume.ID,
		Name:        "CKA: Certified Kubernetes Administrator",
		Year:        2022,
		PublishedAt: weeksAgo(1),
	}
	if err := conn.WithContext(ctx).Create(&certification).Error; err != nil {
		return eris.Wrap(err, "seeding resume certification")
	}

	if logger != nil {
		logger.WithField("component", "content.seed").Info("seed complete")
	}

	return nil
}
