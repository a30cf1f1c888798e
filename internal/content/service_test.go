package content

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewServiceValidatesOptions(t *testing.T) {
	t.Parallel()

	if _, err := NewService(ServiceOptions{PerPage: 5}); err == nil {
		t.Fatalf("expected error without repository")
	}

	repo := setupRepository(t)
	if _, err := NewService(ServiceOptions{Repository: repo}); err == nil {
		t.Fatalf("expected error with zero per-page")
	}
}

func TestPostReturnsNotFoundSentinel(t *testing.T) {
	t.Parallel()

	svc := setupService(t, nil)

	_, err := svc.Post(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVersionReflectsContentChanges(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	svc := newServiceForRepo(t, repo, nil)
	ctx := context.Background()

	empty, err := svc.Version(ctx)
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if empty != EmptyVersion {
		t.Fatalf("expected %q for empty database, got %q", EmptyVersion, empty)
	}

	seedPost(t, repo, "hello", stamp(time.Now()), nil)

	after, err := svc.Version(ctx)
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if after == EmptyVersion {
		t.Fatalf("expected non-empty version after insert")
	}
	if len(after) != 12 {
		t.Fatalf("expected 12-char fingerprint, got %q", after)
	}
}

func TestResumeAssemblesDocument(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	svc := newServiceForRepo(t, repo, nil)
	ctx := context.Background()

	now := time.Now()
	resume := Resume{
		Slug:        PrimaryResumeSlug,
		Name:        "Ada Lovelace",
		Title:       "Engineer",
		Interests:   []string{"mathematics"},
		PublishedAt: stamp(now),
	}
	if err := repo.db.WithContext(ctx).Create(&resume).Error; err != nil {
		t.Fatalf("creating resume failed: %v", err)
	}

	skills := []ResumeSkill{
		{ResumeID: resume.ID, Category: "Languages", Name: "Go", SortOrder: 0, PublishedAt: stamp(now)},
		{ResumeID: resume.ID, Category: "Tools", Name: "Make", SortOrder: 1, PublishedAt: stamp(now)},
		{ResumeID: resume.ID, Category: "Languages", Name: "Ruby", SortOrder: 2, PublishedAt: stamp(now)},
	}
	for i := range skills {
		if err := repo.db.WithContext(ctx).Create(&skills[i]).Error; err != nil {
			t.Fatalf("creating skill failed: %v", err)
		}
	}

	doc, err := svc.Resume(ctx)
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}

	if doc.Name != "Ada Lovelace" {
		t.Errorf("expected name Ada Lovelace, got %q", doc.Name)
	}

	if len(doc.Skills) != 2 {
		t.Fatalf("expected 2 skill groups, got %d", len(doc.Skills))
	}
	if doc.Skills[0].Category != "Languages" || doc.Skills[1].Category != "Tools" {
		t.Fatalf("expected category order [Languages Tools], got [%s %s]",
			doc.Skills[0].Category, doc.Skills[1].Category)
	}
	if len(doc.Skills[0].Items) != 2 || doc.Skills[0].Items[0] != "Go" || doc.Skills[0].Items[1] != "Ruby" {
		t.Fatalf("expected Languages items [Go Ruby], got %v", doc.Skills[0].Items)
	}
}

func TestResumeNotFoundWhenUnpublished(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	svc := newServiceForRepo(t, repo, nil)
	ctx := context.Background()

	draft := Resume{Slug: PrimaryResumeSlug, Name: "A", Title: "B"}
	if err := repo.db.WithContext(ctx).Create(&draft).Error; err != nil {
		t.Fatalf("creating draft resume failed: %v", err)
	}

	_, err := svc.Resume(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for draft resume, got %v", err)
	}
}

func TestSubmitContactValidation(t *testing.T) {
	t.Parallel()

	svc := setupService(t, nil)
	ctx := context.Background()

	err := svc.SubmitContact(ctx, ContactSubmission{})
	if err == nil {
		t.Fatalf("expected validation error for empty submission")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	want := "Name can't be blank, Email can't be blank, Message can't be blank"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestSubmitContactInvalidEmail(t *testing.T) {
	t.Parallel()

	svc := setupService(t, nil)

	err := svc.SubmitContact(context.Background(), ContactSubmission{
		Name:    "Ada",
		Email:   "not-an-address",
		Message: "Hello",
	})
	if err == nil || err.Error() != "Email is invalid" {
		t.Fatalf("expected email validation failure, got %v", err)
	}
}

func TestSubmitContactStoresAndNotifies(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{delivered: make(chan Contact, 1)}
	svc := setupService(t, notifier)

	err := svc.SubmitContact(context.Background(), ContactSubmission{
		Name:    "  Ada  ",
		Email:   "ada@example.com",
		Message: "Hello there",
	})
	if err != nil {
		t.Fatalf("SubmitContact returned error: %v", err)
	}

	select {
	case contact := <-notifier.delivered:
		if contact.Name != "Ada" {
			t.Errorf("expected trimmed name, got %q", contact.Name)
		}
		if contact.ID == "" {
			t.Errorf("expected persisted contact ID in notification")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("notifier was never invoked")
	}
}

func TestSubmitContactSwallowsNotifierFailure(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{
		delivered: make(chan Contact, 1),
		err:       errors.New("smtp unreachable"),
	}
	svc := setupService(t, notifier)

	err := svc.SubmitContact(context.Background(), ContactSubmission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hello",
	})
	if err != nil {
		t.Fatalf("expected notifier failure to stay internal, got %v", err)
	}

	select {
	case <-notifier.delivered:
	case <-time.After(2 * time.Second):
		t.Fatalf("notifier was never invoked")
	}
}

type recordingNotifier struct {
	delivered chan Contact
	err       error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, contact Contact) error {
	n.delivered <- contact
	return n.err
}

func setupService(t *testing.T, notifier Notifier) Service {
	t.Helper()
	return newServiceForRepo(t, setupRepository(t), notifier)
}

func newServiceForRepo(t *testing.T, repo *GormRepository, notifier Notifier) Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, err := NewService(ServiceOptions{
		Repository: repo,
		Notifier:   notifier,
		PerPage:    5,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	return svc
}
