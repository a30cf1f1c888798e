package http

import (
	"time"

	"whoami/app/internal/content"
)

type postView struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Tags            []string   `json:"tags"`
	FeatureImageURL string     `json:"featureImageUrl,omitempty"`
	ProjectID       *string    `json:"projectId,omitempty"`
	ReadingTime     string     `json:"readingTime"`
	PublishedAt     *time.Time `json:"publishedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type projectView struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Excerpt     string     `json:"excerpt"`
	Description string     `json:"description"`
	TechStack   []string   `json:"techStack"`
	URL         string     `json:"url,omitempty"`
	GithubURL   string     `json:"githubUrl,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type skillGroupView struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type experienceView struct {
	Title      string     `json:"title"`
	Company    string     `json:"company"`
	Location   string     `json:"location,omitempty"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Current    bool       `json:"current"`
	Highlights []string   `json:"highlights"`
}

type resumeProjectView struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	ProjectID    *string  `json:"projectId,omitempty"`
}

type educationView struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Location    string   `json:"location,omitempty"`
	StartYear   int      `json:"startYear"`
	EndYear     int      `json:"endYear"`
	Details     []string `json:"details"`
}

type certificationView struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

type resumeContactView struct {
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

type resumeView struct {
	Name           string              `json:"name"`
	Title          string              `json:"title"`
	Summary        string              `json:"summary"`
	Contact        resumeContactView   `json:"contact"`
	Interests      []string            `json:"interests"`
	Skills         []skillGroupView    `json:"skills"`
	Experience     []experienceView    `json:"experience"`
	Projects       []resumeProjectView `json:"projects"`
	Education      []educationView     `json:"education"`
	Certifications []certificationView `json:"certifications"`
}

func serializePost(post content.Post) postView {
	return postView{
		ID:              post.ID,
		Slug:            post.Slug,
		Title:           post.Title,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		Tags:            emptyIfNil(post.Tags),
		FeatureImageURL: post.FeatureImageURL,
		ProjectID:       post.ProjectID,
		ReadingTime:     content.FormatReadingTime(post.Content),
		PublishedAt:     post.PublishedAt,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
}

func serializePosts(posts []content.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, serializePost(post))
	}
	return views
}

func serializeProject(project content.Project) projectView {
	return projectView{
		ID:          project.ID,
		Slug:        project.Slug,
		Name:        project.Name,
		Excerpt:     project.Excerpt,
		Description: project.Description,
		TechStack:   emptyIfNil(project.TechStack),
		URL:         project.URL,
		GithubURL:   project.GithubURL,
		ImageURL:    project.ImageURL,
		Featured:    project.Featured,
		PublishedAt: project.PublishedAt,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func serializeProjects(projects []content.Project) []projectView {
	views := make([]projectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, serializeProject(project))
	}
	return views
}

func serializeResume(doc *content.ResumeDocument) resumeView {
	view := resumeView{
		Name:    doc.Name,
		Title:   doc.Title,
		Summary: doc.Summary,
		Contact: resumeContactView{
			Email:    doc.Email,
			Location: doc.Location,
			Github:   doc.GithubURL,
			Linkedin: doc.LinkedinURL,
			Website:  doc.WebsiteURL,
		},
		Interests:      emptyIfNil(doc.Interests),
		Skills:         make([]skillGroupView, 0, len(doc.Skills)),
		Experience:     make([]experienceView, 0, len(doc.Experience)),
		Projects:       make([]resumeProjectView, 0, len(doc.Projects)),
		Education:      make([]educationView, 0, len(doc.Education)),
		Certifications: make([]certificationView, 0, len(doc.Certifications)),
	}

	for _, group := range doc.Skills {
		view.Skills = append(view.Skills, skillGroupView{
			Category: group.Category,
			Items:    emptyIfNil(group.Items),
		})
	}

	for _, entry := range doc.Experience {
		view.Experience = append(view.Experience, experienceView{
			Title:      entry.Title,
			Company:    entry.Company,
			Location:   entry.Location,
			StartDate:  entry.StartDate,
			EndDate:    entry.EndDate,
			Current:    entry.Current,
			Highlights: emptyIfNil(entry.Highlights),
		})
	}

	for _, entry := range doc.Projects {
		view.Projects = append(view.Projects, resumeProjectView{
			Name:         entry.Name,
			Description:  entry.Description,
			Technologies: emptyIfNil(entry.Technologies),
			ProjectID:    entry.ProjectID,
		})
	}

	for _, entry := range doc.Education {
		view.Education = append(view.Education, educationView{
			Degree:      entry.Degree,
			Institution: entry.Institution,
			Location:    entry.Location,
			StartYear:   entry.StartYear,
			EndYear:     entry.EndYear,
			Details:     emptyIfNil(entry.Details),
		})
	}

	for _, entry := range doc.Certifications {
		view.Certifications = append(view.Certifications, certificationView{
			Name: entry.Name,
			Year: entry.Year,
		})
	}

	return view
}

// emptyIfNil keeps JSON arrays as [] instead of null.
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
