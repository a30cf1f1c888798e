package http

import (
	"context"
	stdhttp "net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"whoami/app/internal/content"
	"whoami/app/internal/db"
)

const (
	postsPath       = "/api/posts"
	postDetailPath  = "/api/posts/{param}"
	projectsPath    = "/api/projects"
	projectDetail   = "/api/projects/{param}"
	resumePath      = "/api/resume"
	versionPath     = "/api/version"
	contactsPath    = "/api/contacts"
	healthPath      = "/api/healthz"
	fallbackMessage = "We couldn't process your request right now."
)

// pageInput deliberately takes the page as a raw string: anything that is not
// a positive number means page 1, never a client error.
type pageInput struct {
	Page string `query:"page" required:"false" doc:"Page number, defaults to 1"`
}

type detailInput struct {
	Param string `path:"param" doc:"Record slug or UUID"`
}

type postListOutput struct {
	Body struct {
		Data []postView      `json:"data"`
		Meta content.PageMeta `json:"meta"`
	}
}

type postDetailOutput struct {
	Body postView
}

type projectListOutput struct {
	Body struct {
		Data []projectView    `json:"data"`
		Meta content.PageMeta `json:"meta"`
	}
}

type projectDetailOutput struct {
	Body projectView
}

type resumeOutput struct {
	Body resumeView
}

type versionOutput struct {
	Body struct {
		Version string `json:"version"`
	}
}

type contactInput struct {
	Body struct {
		Name    string `json:"name" required:"false" maxLength:"500"`
		Email   string `json:"email" required:"false" maxLength:"500"`
		Message string `json:"message" required:"false" maxLength:"10000"`
	}
}

type contactOutput struct {
	Status int
	Body   struct {
		Message string `json:"message"`
	}
}

type healthOutput struct {
	Status int
	Body   struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
}

func (s *Server) registerRoutes() {
	huma.Get(s.api, postsPath, s.listPostsHandler, jsonOperation("List published posts"))
	huma.Get(s.api, postDetailPath, s.getPostHandler, jsonOperation("Fetch a single post", stdhttp.StatusNotFound))
	huma.Get(s.api, projectsPath, s.listProjectsHandler, jsonOperation("List published projects"))
	huma.Get(s.api, projectDetail, s.getProjectHandler, jsonOperation("Fetch a single project", stdhttp.StatusNotFound))
	huma.Get(s.api, resumePath, s.resumeHandler, jsonOperation("Fetch the resume document", stdhttp.StatusNotFound))
	huma.Get(s.api, versionPath, s.versionHandler, jsonOperation("Fetch the content version fingerprint"))
	huma.Post(s.api, contactsPath, s.createContactHandler, func(op *huma.Operation) {
		op.Summary = "Submit a contact message"
		op.DefaultStatus = stdhttp.StatusCreated
	})
	huma.Get(s.api, healthPath, s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) listPostsHandler(ctx context.Context, input *pageInput) (*postListOutput, error) {
	page := content.ParsePage(input.Page)

	posts, meta, err := s.content.Posts(ctx, page)
	if err != nil {
		s.recordError(ctx, err, "listing posts", logrus.Fields{"page": page})
		return nil, internalError(fallbackMessage)
	}

	out := &postListOutput{}
	out.Body.Data = serializePosts(posts)
	out.Body.Meta = meta
	return out, nil
}

func (s *Server) getPostHandler(ctx context.Context, input *detailInput) (*postDetailOutput, error) {
	post, err := s.content.Post(ctx, input.Param)
	if err != nil {
		if eris.Is(err, content.ErrNotFound) {
			return nil, notFoundError("Post not found")
		}
		s.recordError(ctx, err, "fetching post", logrus.Fields{"param": input.Param})
		return nil, internalError(fallbackMessage)
	}

	return &postDetailOutput{Body: serializePost(*post)}, nil
}

func (s *Server) listProjectsHandler(ctx context.Context, input *pageInput) (*projectListOutput, error) {
	page := content.ParsePage(input.Page)

	projects, meta, err := s.content.Projects(ctx, page)
	if err != nil {
		s.recordError(ctx, err, "listing projects", logrus.Fields{"page": page})
		return nil, internalError(fallbackMessage)
	}

	out := &projectListOutput{}
	out.Body.Data = serializeProjects(projects)
	out.Body.Meta = meta
	return out, nil
}

func (s *Server) getProjectHandler(ctx context.Context, input *detailInput) (*projectDetailOutput, error) {
	project, err := s.content.Project(ctx, input.Param)
	if err != nil {
		if eris.Is(err, content.ErrNotFound) {
			return nil, notFoundError("Project not found")
		}
		s.recordError(ctx, err, "fetching project", logrus.Fields{"param": input.Param})
		return nil, internalError(fallbackMessage)
	}

	return &projectDetailOutput{Body: serializeProject(*project)}, nil
}

func (s *Server) resumeHandler(ctx context.Context, _ *struct{}) (*resumeOutput, error) {
	doc, err := s.content.Resume(ctx)
	if err != nil {
		if eris.Is(err, content.ErrNotFound) {
			return nil, notFoundError("Resume not found")
		}
		s.recordError(ctx, err, "fetching resume", nil)
		return nil, internalError(fallbackMessage)
	}

	return &resumeOutput{Body: serializeResume(doc)}, nil
}

func (s *Server) versionHandler(ctx context.Context, _ *struct{}) (*versionOutput, error) {
	version, err := s.content.Version(ctx)
	if err != nil {
		s.recordError(ctx, err, "computing content version", nil)
		return nil, internalError(fallbackMessage)
	}

	out := &versionOutput{}
	out.Body.Version = version
	return out, nil
}

func (s *Server) createContactHandler(ctx context.Context, input *contactInput) (*contactOutput, error) {
	submission := content.ContactSubmission{
		Name:    input.Body.Name,
		Email:   input.Body.Email,
		Message: input.Body.Message,
	}

	if err := s.content.SubmitContact(ctx, submission); err != nil {
		var validationErr *content.ValidationError
		if eris.As(err, &validationErr) {
			return nil, invalidContentError(validationErr.Error())
		}
		s.recordError(ctx, err, "storing contact message", nil)
		return nil, internalError(fallbackMessage)
	}

	out := &contactOutput{Status: stdhttp.StatusCreated}
	out.Body.Message = "Message sent successfully"
	return out, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthOutput, error) {
	resp := &healthOutput{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"

	sqlDB, err := db.SQLDB(s.db)
	if err != nil {
		s.recordError(ctx, err, "obtaining sql db", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		s.recordError(ctx, pingErr, "pinging database", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}

func jsonOperation(summary string, errorStatuses ...int) func(op *huma.Operation) {
	return func(op *huma.Operation) {
		op.Summary = summary
		if len(errorStatuses) == 0 {
			return
		}

		if op.Responses == nil {
			op.Responses = map[string]*huma.Response{}
		}
		for _, status := range errorStatuses {
			op.Responses[strconv.Itoa(status)] = &huma.Response{
				Description: stdhttp.StatusText(status),
				Content: map[string]*huma.MediaType{
					"application/json": {
						Schema: &huma.Schema{Type: "object"},
					},
				},
			}
		}
	}
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
