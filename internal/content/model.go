package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog entry. PublishedAt and DeletedAt are nullable on
// purpose: a nil PublishedAt is a draft, a non-nil DeletedAt is a soft delete.
type Post struct {
	ID              string     `gorm:"type:text;primaryKey"`
	Slug            string     `gorm:"size:255;uniqueIndex:idx_posts_slug;not null"`
	Title           string     `gorm:"size:255;not null"`
	Excerpt         string     `gorm:"type:text"`
	Content         string     `gorm:"type:text"`
	Tags            []string   `gorm:"serializer:json"`
	FeatureImageURL string     `gorm:"type:text"`
	ProjectID       *string    `gorm:"type:text;index"`
	PublishedAt     *time.Time `gorm:"index"`
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Post) TableName() string { return "posts" }

// BeforeCreate assigns a UUID primary key when none is set.
func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Project represents a portfolio project entry.
type Project struct {
	ID          string   `gorm:"type:text;primaryKey"`
	Slug        string   `gorm:"size:255;uniqueIndex:idx_projects_slug;not null"`
	Name        string   `gorm:"size:255;uniqueIndex:idx_projects_name;not null"`
	Excerpt     string   `gorm:"type:text"`
	Description string   `gorm:"type:text"`
	TechStack   []string `gorm:"serializer:json"`
	URL         string   `gorm:"type:text"`
	GithubURL   string   `gorm:"type:text"`
	ImageURL    string   `gorm:"type:text"`
	Featured    bool     `gorm:"not null;default:false"`
	PublishedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Resume is the root record of the structured resume document. Exactly one
// record, selected by the fixed slug "primary", is served by the API.
type Resume struct {
	ID          string   `gorm:"type:text;primaryKey"`
	Slug        string   `gorm:"size:255;uniqueIndex:idx_resumes_slug;not null"`
	Name        string   `gorm:"size:255;not null"`
	Title       string   `gorm:"size:255;not null"`
	Summary     string   `gorm:"type:text"`
	Email       string   `gorm:"size:320"`
	Location    string   `gorm:"size:255"`
	GithubURL   string   `gorm:"type:text"`
	LinkedinURL string   `gorm:"type:text"`
	WebsiteURL  string   `gorm:"type:text"`
	Interests   []string `gorm:"serializer:json"`
	PublishedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Resume) TableName() string { return "resumes" }

func (r *Resume) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ResumeSkill is a single skill grouped under a category label.
type ResumeSkill struct {
	ID          string `gorm:"type:text;primaryKey"`
	ResumeID    string `gorm:"type:text;not null;index"`
	Category    string `gorm:"size:255;not null"`
	Name        string `gorm:"size:255;not null"`
	SortOrder   int    `gorm:"not null;default:0"`
	PublishedAt *time.Time
	DeletedAt   *time.Time
}

func (ResumeSkill) TableName() string { return "resume_skills" }

func (s *ResumeSkill) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ResumeExperience is a single employment entry.
type ResumeExperience struct {
	ID          string `gorm:"type:text;primaryKey"`
	ResumeID    string `gorm:"type:text;not null;index"`
	Title       string `gorm:"size:255;not null"`
	Company     string `gorm:"size:255;not null"`
	Location    string `gorm:"size:255"`
	StartDate   time.Time
	EndDate     *time.Time
	Current     bool     `gorm:"not null;default:false"`
	Highlights  []string `gorm:"serializer:json"`
	SortOrder   int      `gorm:"not null;default:0"`
	PublishedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ResumeExperience) TableName() string { return "resume_experiences" }

func (e *ResumeExperience) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ResumeProject is a project highlighted on the resume, optionally linked to a
// portfolio Project.
type ResumeProject struct {
	ID           string   `gorm:"type:text;primaryKey"`
	ResumeID     string   `gorm:"type:text;not null;index"`
	Name         string   `gorm:"size:255;not null"`
	Description  string   `gorm:"type:text"`
	Technologies []string `gorm:"serializer:json"`
	ProjectID    *string  `gorm:"type:text;index"`
	SortOrder    int      `gorm:"not null;default:0"`
	PublishedAt  *time.Time
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ResumeProject) TableName() string { return "resume_projects" }

func (p *ResumeProject) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ResumeEducation is a single education entry.
type ResumeEducation struct {
	ID          string `gorm:"type:text;primaryKey"`
	ResumeID    string `gorm:"type:text;not null;index"`
	Degree      string `gorm:"size:255;not null"`
	Institution string `gorm:"size:255;not null"`
	Location    string `gorm:"size:255"`
	StartYear   int
	EndYear     int
	Details     []string `gorm:"serializer:json"`
	SortOrder   int      `gorm:"not null;default:0"`
	PublishedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ResumeEducation) TableName() string { return "resume_education" }

func (e *ResumeEducation) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ResumeCertification is a single certification entry.
type ResumeCertification struct {
	ID          string `gorm:"type:text;primaryKey"`
	ResumeID    string `gorm:"type:text;not null;index"`
	Name        string `gorm:"size:255;not null"`
	Year        int
	SortOrder   int `gorm:"not null;default:0"`
	PublishedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ResumeCertification) TableName() string { return "resume_certifications" }

func (c *ResumeCertification) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Contact is a message submitted through the contact form. Contacts are write
// only through this API: created once, never updated or read back.
type Contact struct {
	ID        string `gorm:"type:text;primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:320;not null"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Contact) TableName() string { return "contacts" }

func (c *Contact) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
