package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// APIError is the single error shape every failed request is normalized to:
// HTTP status, its text, and an optional detail string extracted from the
// response body.
type APIError struct {
	Status     int
	StatusText string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.StatusText)
}

// Client talks to the content API.
type Client struct {
	baseURL string
	http    *stdhttp.Client
	logger  *logrus.Logger
}

// Options configures the API client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// New constructs an API client for the given base URL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, eris.New("base URL is required")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &stdhttp.Client{Timeout: timeout},
		logger:  opts.Logger,
	}, nil
}

// PageMeta mirrors the pagination metadata the API returns alongside lists.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Post is a blog entry as served by the API.
type Post struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Tags            []string   `json:"tags"`
	FeatureImageURL string     `json:"featureImageUrl"`
	ReadingTime     string     `json:"readingTime"`
	PublishedAt     *time.Time `json:"publishedAt"`
}

// Project is a portfolio project as served by the API.
type Project struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Excerpt     string     `json:"excerpt"`
	Description string     `json:"description"`
	TechStack   []string   `json:"techStack"`
	URL         string     `json:"url"`
	GithubURL   string     `json:"githubUrl"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// PostList is one page of posts plus its metadata.
type PostList struct {
	Data []Post   `json:"data"`
	Meta PageMeta `json:"meta"`
}

// ProjectList is one page of projects plus its metadata.
type ProjectList struct {
	Data []Project `json:"data"`
	Meta PageMeta  `json:"meta"`
}

// SkillGroup is one category of resume skills.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Experience is one employment entry on the resume.
type Experience struct {
	Title      string     `json:"title"`
	Company    string     `json:"company"`
	Location   string     `json:"location"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	Current    bool       `json:"current"`
	Highlights []string   `json:"highlights"`
}

// ResumeProject is a project highlighted on the resume.
type ResumeProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Education is one education entry on the resume.
type Education struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Location    string   `json:"location"`
	StartYear   int      `json:"startYear"`
	EndYear     int      `json:"endYear"`
	Details     []string `json:"details"`
}

// Certification is one certification entry on the resume.
type Certification struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// ResumeContact carries the resume's contact links.
type ResumeContact struct {
	Email    string `json:"email"`
	Location string `json:"location"`
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
	Website  string `json:"website"`
}

// Resume is the structured resume document.
type Resume struct {
	Name           string          `json:"name"`
	Title          string          `json:"title"`
	Summary        string          `json:"summary"`
	Contact        ResumeContact   `json:"contact"`
	Interests      []string        `json:"interests"`
	Skills         []SkillGroup    `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Projects       []ResumeProject `json:"projects"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
}

// ContactSubmission is the payload for the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Posts fetches one page of published posts.
func (c *Client) Posts(ctx context.Context, page int) (*PostList, error) {
	var list PostList
	if err := c.get(ctx, fmt.Sprintf("/api/posts?page=%d", page), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Post fetches a single post by slug or UUID.
func (c *Client) Post(ctx context.Context, slugOrID string) (*Post, error) {
	var post Post
	if err := c.get(ctx, "/api/posts/"+slugOrID, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Projects fetches one page of published projects.
func (c *Client) Projects(ctx context.Context, page int) (*ProjectList, error) {
	var list ProjectList
	if err := c.get(ctx, fmt.Sprintf("/api/projects?page=%d", page), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Project fetches a single project by slug or UUID.
func (c *Client) Project(ctx context.Context, slugOrID string) (*Project, error) {
	var project Project
	if err := c.get(ctx, "/api/projects/"+slugOrID, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Resume fetches the structured resume document.
func (c *Client) Resume(ctx context.Context) (*Resume, error) {
	var resume Resume
	if err := c.get(ctx, "/api/resume", &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// Version fetches the content version fingerprint.
func (c *Client) Version(ctx context.Context) (string, error) {
	var payload struct {
		Version string `json:"version"`
	}
	if err := c.get(ctx, "/api/version", &payload); err != nil {
		return "", err
	}
	return payload.Version, nil
}

// SubmitContact sends a contact message. Validation failures come back as an
// *APIError with status 422 and the combined message in Detail.
func (c *Client) SubmitContact(ctx context.Context, submission ContactSubmission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return eris.Wrap(err, "encoding contact submission")
	}

	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodPost, c.baseURL+"/api/contacts", bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "building contact request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "sending contact submission")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrapf(err, "building request for %s", path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "requesting %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return eris.Wrapf(err, "decoding response from %s", path)
	}

	return nil
}

func (c *Client) errorFromResponse(resp *stdhttp.Response) error {
	apiErr := &APIError{
		Status:     resp.StatusCode,
		StatusText: stdhttp.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			apiErr.Detail = payload.Message
		}
	}

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"status": apiErr.Status,
			"url":    resp.Request.URL.String(),
		}).Debug("api request failed")
	}

	return apiErr
}
