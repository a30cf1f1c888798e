package content

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// PrimaryResumeSlug selects the one resume record the API serves.
const PrimaryResumeSlug = "primary"

// ErrNotFound indicates a detail lookup matched no visible record.
var ErrNotFound = eris.New("not found")

// Notifier delivers a best-effort notification for a new contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, contact Contact) error
}

// Service defines the content operations exposed through the HTTP layer.
type Service interface {
	Posts(ctx context.Context, page int) ([]Post, PageMeta, error)
	Post(ctx context.Context, slugOrID string) (*Post, error)
	Projects(ctx context.Context, page int) ([]Project, PageMeta, error)
	Project(ctx context.Context, slugOrID string) (*Project, error)
	Resume(ctx context.Context) (*ResumeDocument, error)
	Version(ctx context.Context) (string, error)
	SubmitContact(ctx context.Context, submission ContactSubmission) error
}

// SkillGroup collects resume skills under one category label, in sort order.
type SkillGroup struct {
	Category string
	Items    []string
}

// ResumeDocument is the fully assembled resume served by GET /api/resume.
type ResumeDocument struct {
	Name           string
	Title          string
	Summary        string
	Email          string
	Location       string
	GithubURL      string
	LinkedinURL    string
	WebsiteURL     string
	Interests      []string
	Skills         []SkillGroup
	Experience     []ResumeExperience
	Projects       []ResumeProject
	Education      []ResumeEducation
	Certifications []ResumeCertification
}

type service struct {
	repo      Repository
	notifier  Notifier
	perPage   int
	logger    *logrus.Logger
	sentryHub *sentry.Hub
}

var _ Service = (*service)(nil)

// ServiceOptions configures the content service.
type ServiceOptions struct {
	Repository Repository
	Notifier   Notifier
	PerPage    int
	Logger     *logrus.Logger
	SentryHub  *sentry.Hub
}

// NewService wires the content service with its dependencies. The notifier is
// optional; without one, contact submissions are stored silently.
func NewService(opts ServiceOptions) (Service, error) {
	if opts.Repository == nil {
		return nil, eris.New("content repository is required")
	}
	if opts.PerPage <= 0 {
		return nil, eris.New("per page must be greater than zero")
	}

	return &service{
		repo:      opts.Repository,
		notifier:  opts.Notifier,
		perPage:   opts.PerPage,
		logger:    opts.Logger,
		sentryHub: opts.SentryHub,
	}, nil
}

func (s *service) Posts(ctx context.Context, page int) ([]Post, PageMeta, error) {
	posts, meta, err := s.repo.ListPosts(ctx, page, s.perPage)
	if err != nil {
		s.recordError(logrus.Fields{"page": page}, err, "listing posts")
		return nil, PageMeta{}, eris.Wrap(err, "listing posts")
	}
	return posts, meta, nil
}

func (s *service) Post(ctx context.Context, slugOrID string) (*Post, error) {
	post, err := s.repo.GetPost(ctx, slugOrID)
	if err != nil {
		s.recordError(logrus.Fields{"param": slugOrID}, err, "retrieving post")
		return nil, eris.Wrapf(err, "retrieving post: %s", slugOrID)
	}
	if post == nil {
		return nil, eris.Wrap(ErrNotFound, "post")
	}
	return post, nil
}

func (s *service) Projects(ctx context.Context, page int) ([]Project, PageMeta, error) {
	projects, meta, err := s.repo.ListProjects(ctx, page, s.perPage)
	if err != nil {
		s.recordError(logrus.Fields{"page": page}, err, "listing projects")
		return nil, PageMeta{}, eris.Wrap(err, "listing projects")
	}
	return projects, meta, nil
}

func (s *service) Project(ctx context.Context, slugOrID string) (*Project, error) {
	project, err := s.repo.GetProject(ctx, slugOrID)
	if err != nil {
		s.recordError(logrus.Fields{"param": slugOrID}, err, "retrieving project")
		return nil, eris.Wrapf(err, "retrieving project: %s", slugOrID)
	}
	if project == nil {
		return nil, eris.Wrap(ErrNotFound, "project")
	}
	return project, nil
}

func (s *service) Resume(ctx context.Context) (*ResumeDocument, error) {
	resume, err := s.repo.GetResume(ctx, PrimaryResumeSlug)
	if err != nil {
		s.recordError(nil, err, "retrieving resume")
		return nil, eris.Wrap(err, "retrieving resume")
	}
	if resume == nil {
		return nil, eris.Wrap(ErrNotFound, "resume")
	}

	skills, err := s.repo.ListResumeSkills(ctx, resume.ID)
	if err != nil {
		s.recordError(nil, err, "loading resume skills")
		return nil, eris.Wrap(err, "loading resume skills")
	}

	experiences, err := s.repo.ListResumeExperiences(ctx, resume.ID)
	if err != nil {
		s.recordError(nil, err, "loading resume experiences")
		return nil, eris.Wrap(err, "loading resume experiences")
	}

	projects, err := s.repo.ListResumeProjects(ctx, resume.ID)
	if err != nil {
		s.recordError(nil, err, "loading resume projects")
		return nil, eris.Wrap(err, "loading resume projects")
	}

	education, err := s.repo.ListResumeEducation(ctx, resume.ID)
	if err != nil {
		s.recordError(nil, err, "loading resume education")
		return nil, eris.Wrap(err, "loading resume education")
	}

	certifications, err := s.repo.ListResumeCertifications(ctx, resume.ID)
	if err != nil {
		s.recordError(nil, err, "loading resume certifications")
		return nil, eris.Wrap(err, "loading resume certifications")
	}

	return &ResumeDocument{
		Name:           resume.Name,
		Title:          resume.Title,
		Summary:        resume.Summary,
		Email:          resume.Email,
		Location:       resume.Location,
		GithubURL:      resume.GithubURL,
		LinkedinURL:    resume.LinkedinURL,
		WebsiteURL:     resume.WebsiteURL,
		Interests:      resume.Interests,
		Skills:         groupSkills(skills),
		Experience:     experiences,
		Projects:       projects,
		Education:      education,
		Certifications: certifications,
	}, nil
}

func (s *service) Version(ctx context.Context) (string, error) {
	latest, err := s.repo.LatestUpdate(ctx)
	if err != nil {
		s.recordError(nil, err, "computing content version")
		return "", eris.Wrap(err, "computing content version")
	}
	return Fingerprint(latest), nil
}

func (s *service) SubmitContact(ctx context.Context, submission ContactSubmission) error {
	if err := submission.Validate(); err != nil {
		return err
	}

	contact := submission.Normalize()
	if err := s.repo.CreateContact(ctx, &contact); err != nil {
		s.recordError(nil, err, "storing contact message")
		return eris.Wrap(err, "storing contact message")
	}

	if s.notifier != nil {
		// Fire and forget: notification failure never surfaces to the caller.
		notifyCtx := context.WithoutCancel(ctx)
		go func() {
			if err := s.notifier.NotifyContact(notifyCtx, contact); err != nil {
				s.recordError(logrus.Fields{"contact_id": contact.ID}, err, "sending contact notification")
			}
		}()
	}

	return nil
}

// groupSkills buckets skills by category, preserving the sort order of both
// the categories (first appearance) and the items within each category.
func groupSkills(skills []ResumeSkill) []SkillGroup {
	groups := make([]SkillGroup, 0, len(skills))
	index := make(map[string]int, len(skills))

	for _, skill := range skills {
		at, ok := index[skill.Category]
		if !ok {
			at = len(groups)
			index[skill.Category] = at
			groups = append(groups, SkillGroup{Category: skill.Category})
		}
		groups[at].Items = append(groups[at].Items, skill.Name)
	}

	return groups
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
