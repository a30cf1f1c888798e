package content

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Repository defines persistence operations over the content tables. All list
// operations apply the published filter; detail lookups differ, see GetPost.
type Repository interface {
	ListPosts(ctx context.Context, page, perPage int) ([]Post, PageMeta, error)
	GetPost(ctx context.Context, slugOrID string) (*Post, error)
	ListProjects(ctx context.Context, page, perPage int) ([]Project, PageMeta, error)
	GetProject(ctx context.Context, slugOrID string) (*Project, error)
	GetResume(ctx context.Context, slug string) (*Resume, error)
	ListResumeSkills(ctx context.Context, resumeID string) ([]ResumeSkill, error)
	ListResumeExperiences(ctx context.Context, resumeID string) ([]ResumeExperience, error)
	ListResumeProjects(ctx context.Context, resumeID string) ([]ResumeProject, error)
	ListResumeEducation(ctx context.Context, resumeID string) ([]ResumeEducation, error)
	ListResumeCertifications(ctx context.Context, resumeID string) ([]ResumeCertification, error)
	CreateContact(ctx context.Context, contact *Contact) error
	LatestUpdate(ctx context.Context) (*time.Time, error)
	HasContent(ctx context.Context) (bool, error)
}

// GormRepository persists content using a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(conn *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if conn == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: conn, logger: logger}, nil
}

var _ Repository = (*GormRepository)(nil)

// ListPosts returns one page of published posts, newest publish date first.
func (r *GormRepository) ListPosts(ctx context.Context, page, perPage int) ([]Post, PageMeta, error) {
	base := r.db.WithContext(ctx).Model(&Post{}).Scopes(Published)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		r.logError(nil, err, "counting published posts")
		return nil, PageMeta{}, eris.Wrap(err, "counting published posts")
	}

	meta := NewPageMeta(page, perPage, total)

	posts := make([]Post, 0, perPage)
	err := r.db.WithContext(ctx).Scopes(Published).
		Order("published_at DESC").
		Limit(perPage).Offset(meta.Offset()).
		Find(&posts).Error
	if err != nil {
		r.logError(logrus.Fields{"page": page}, err, "listing posts")
		return nil, PageMeta{}, eris.Wrap(err, "listing posts")
	}

	return posts, meta, nil
}

// GetPost returns the post for a slug or UUID, or nil when not found.
// Unlike GetProject this lookup does not apply the published scope:
// drafts stay reachable by direct link for proofreading.
func (r *GormRepository) GetPost(ctx context.Context, slugOrID string) (*Post, error) {
	if slugOrID == "" {
		return nil, eris.New("slug or id is required")
	}

	var post Post
	query := r.db.WithContext(ctx)
	var err error
	if IsUUID(slugOrID) {
		err = query.First(&post, "id = ?", slugOrID).Error
	} else {
		err = query.First(&post, "slug = ?", slugOrID).Error
	}
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"param": slugOrID}, err, "fetching post")
		return nil, eris.Wrapf(err, "fetching post: %s", slugOrID)
	}

	return &post, nil
}

// ListProjects returns one page of published projects ordered by name.
func (r *GormRepository) ListProjects(ctx context.Context, page, perPage int) ([]Project, PageMeta, error) {
	base := r.db.WithContext(ctx).Model(&Project{}).Scopes(Published)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		r.logError(nil, err, "counting published projects")
		return nil, PageMeta{}, eris.Wrap(err, "counting published projects")
	}

	meta := NewPageMeta(page, perPage, total)

	projects := make([]Project, 0, perPage)
	err := r.db.WithContext(ctx).Scopes(Published).
		Order("name ASC").
		Limit(perPage).Offset(meta.Offset()).
		Find(&projects).Error
	if err != nil {
		r.logError(logrus.Fields{"page": page}, err, "listing projects")
		return nil, PageMeta{}, eris.Wrap(err, "listing projects")
	}

	return projects, meta, nil
}

// GetProject returns the published project for a slug or UUID, or nil when
// not found (drafts and soft-deleted projects are treated as missing).
func (r *GormRepository) GetProject(ctx context.Context, slugOrID string) (*Project, error) {
	if slugOrID == "" {
		return nil, eris.New("slug or id is required")
	}

	var project Project
	query := r.db.WithContext(ctx).Scopes(Published)
	var err error
	if IsUUID(slugOrID) {
		err = query.First(&project, "id = ?", slugOrID).Error
	} else {
		err = query.First(&project, "slug = ?", slugOrID).Error
	}
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"param": slugOrID}, err, "fetching project")
		return nil, eris.Wrapf(err, "fetching project: %s", slugOrID)
	}

	return &project, nil
}

// GetResume returns the published resume for the given slug, or nil.
func (r *GormRepository) GetResume(ctx context.Context, slug string) (*Resume, error) {
	if slug == "" {
		return nil, eris.New("slug is required")
	}

	var resume Resume
	err := r.db.WithContext(ctx).Scopes(Published).First(&resume, "slug = ?", slug).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(logrus.Fields{"slug": slug}, err, "fetching resume")
		return nil, eris.Wrapf(err, "fetching resume: %s", slug)
	}

	return &resume, nil
}

// ListResumeSkills returns published skills for a resume in sort order.
func (r *GormRepository) ListResumeSkills(ctx context.Context, resumeID string) ([]ResumeSkill, error) {
	var skills []ResumeSkill
	err := r.resumeScope(ctx, resumeID).Find(&skills).Error
	if err != nil {
		r.logError(logrus.Fields{"resume_id": resumeID}, err, "listing resume skills")
		return nil, eris.Wrap(err, "listing resume skills")
	}
	return skills, nil
}

// ListResumeExperiences returns published experience entries in sort order.
func (r *GormRepository) ListResumeExperiences(ctx context.Context, resumeID string) ([]ResumeExperience, error) {
	var experiences []ResumeExperience
	err := r.resumeScope(ctx, resumeID).Find(&experiences).Error
	if err != nil {
		r.logError(logrus.Fields{"resume_id": resumeID}, err, "listing resume experiences")
		return nil, eris.Wrap(err, "listing resume experiences")
	}
	return experiences, nil
}

// ListResumeProjects returns published resume projects in sort order.
func (r *GormRepository) ListResumeProjects(ctx context.Context, resumeID string) ([]ResumeProject, error) {
	var projects []ResumeProject
	err := r.resumeScope(ctx, resumeID).Find(&projects).Error
	if err != nil {
		r.logError(logrus.Fields{"resume_id": resumeID}, err, "listing resume projects")
		return nil, eris.Wrap(err, "listing resume projects")
	}
	return projects, nil
}

// ListResumeEducation returns published education entries in sort order.
func (r *GormRepository) ListResumeEducation(ctx context.Context, resumeID string) ([]ResumeEducation, error) {
	var education []ResumeEducation
	err := r.resumeScope(ctx, resumeID).Find(&education).Error
	if err != nil {
		r.logError(logrus.Fields{"resume_id": resumeID}, err, "listing resume education")
		return nil, eris.Wrap(err, "listing resume education")
	}
	return education, nil
}

// ListResumeCertifications returns published certifications in sort order.
func (r *GormRepository) ListResumeCertifications(ctx context.Context, resumeID string) ([]ResumeCertification, error) {
	var certifications []ResumeCertification
	err := r.resumeScope(ctx, resumeID).Find(&certifications).Error
	if err != nil {
		r.logError(logrus.Fields{"resume_id": resumeID}, err, "listing resume certifications")
		return nil, eris.Wrap(err, "listing resume certifications")
	}
	return certifications, nil
}

// CreateContact stores a validated contact message.
func (r *GormRepository) CreateContact(ctx context.Context, contact *Contact) error {
	if contact == nil {
		return eris.New("contact is nil")
	}

	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		r.logError(nil, err, "creating contact")
		return eris.Wrap(err, "creating contact")
	}

	return nil
}

// LatestUpdate returns the newest updated_at across every content table, or
// nil when no content rows exist.
func (r *GormRepository) LatestUpdate(ctx context.Context) (*time.Time, error) {
	tables := []string{
		"posts", "projects", "resumes",
		"resume_experiences", "resume_projects",
		"resume_education", "resume_certifications",
	}

	var latest *time.Time
	for _, table := range tables {
		var stamp sql.NullTime
		err := r.db.WithContext(ctx).
			Table(table).
			Select("MAX(updated_at)").
			Scan(&stamp).Error
		if err != nil {
			r.logError(logrus.Fields{"table": table}, err, "querying latest update")
			return nil, eris.Wrapf(err, "querying latest update for %s", table)
		}

		if stamp.Valid && (latest == nil || stamp.Time.After(*latest)) {
			value := stamp.Time
			latest = &value
		}
	}

	return latest, nil
}

// HasContent reports whether any post, project, or resume exists at all,
// including drafts. Used to decide whether first-run seeding applies.
func (r *GormRepository) HasContent(ctx context.Context) (bool, error) {
	for _, model := range []any{&Post{}, &Project{}, &Resume{}} {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			r.logError(nil, err, "counting content rows")
			return false, eris.Wrap(err, "counting content rows")
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *GormRepository) resumeScope(ctx context.Context, resumeID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Scopes(Published).
		Where("resume_id = ?", resumeID).
		Order("sort_order ASC")
}

func (r *GormRepository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
