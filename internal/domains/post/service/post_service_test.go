package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidehustle-backend/internal/domains/post/model"
	"sidehustle-backend/internal/domains/post/repository"
	userModel "sidehustle-backend/internal/domains/user/model"
	userRepo "sidehustle-backend/internal/domains/user/repository"
	"sidehustle-backend/internal/shared"
	"sidehustle-backend/internal/shared/apperr"
)

// fakeClock tăng 1 giây mỗi lần đọc
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

type fixture struct {
	svc   Service
	repo  repository.Repository
	alice int64
	bob   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := userRepo.NewMemoryRepository()
	alice := &userModel.User{Username: "alice", Email: "alice@example.com", ANumber: "A1"}
	bob := &userModel.User{Username: "bob", Email: "bob@example.com", ANumber: "A2"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	repo := repository.NewMemoryRepository()
	clock := &fakeClock{cur: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}

	return &fixture{
		svc:   NewPostServiceWithClock(repo, users, clock.Now),
		repo:  repo,
		alice: alice.ID,
		bob:   bob.ID,
	}
}

func input(title string) model.PostInput {
	return model.PostInput{
		Title:       shared.Some(title),
		Description: shared.Some("a description"),
	}
}

func ids(posts []model.PostResponse) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.PostID)
	}
	return out
}

func TestCreateAssignsCallerAndDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var in model.PostInput
	body := `{"PostID": 42, "AuthorID": 999, "Author": {"id": 999}, "Status": "published",
		"Title": "Tutoring app", "Description": "Peer tutoring", "Category": "education", "FundingNeeds": "1500"}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	created, err := f.svc.Create(ctx, f.alice, in)
	require.NoError(t, err)

	assert.NotEqual(t, int64(42), created.PostID)
	assert.Equal(t, f.alice, created.Author.ID)
	assert.Equal(t, "alice", created.Author.Username)
	assert.Equal(t, model.StatusDraft, created.Status)
	assert.Equal(t, model.CategoryEducation, created.Category)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	require.NotNil(t, created.FundingNeeds)
	assert.Equal(t, "1500.00", created.FundingNeeds.StringFixed(2))
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.alice, model.PostInput{})
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "Title")
	assert.Contains(t, e.Fields, "Description")

	mine, err := f.svc.List(context.Background(), f.alice, model.ScopeMine)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestPublicListExcludesUnpublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Create(ctx, f.alice, input("draft"))
	require.NoError(t, err)
	archived, err := f.svc.Create(ctx, f.alice, input("archived"))
	require.NoError(t, err)
	_, err = f.svc.Archive(ctx, f.alice, archived.PostID)
	require.NoError(t, err)
	published, err := f.svc.Create(ctx, f.alice, input("published"))
	require.NoError(t, err)
	_, err = f.svc.Publish(ctx, f.alice, published.PostID)
	require.NoError(t, err)

	public, err := f.svc.List(ctx, f.bob, model.ScopePublic)
	require.NoError(t, err)
	assert.Equal(t, []int64{published.PostID}, ids(public))

	mine, err := f.svc.List(ctx, f.alice, model.ScopeMine)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{draft.PostID, archived.PostID, published.PostID}, ids(mine))

	bobs, err := f.svc.List(ctx, f.bob, model.ScopeMine)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var want []int64
	for _, title := range []string{"first", "second", "third"} {
		p, err := f.svc.Create(ctx, f.alice, input(title))
		require.NoError(t, err)
		want = append([]int64{p.PostID}, want...)
	}

	mine, err := f.svc.List(ctx, f.alice, model.ScopeMine)
	require.NoError(t, err)
	assert.Equal(t, want, ids(mine))

	_, err = f.svc.List(ctx, f.alice, model.Scope("everything"))
	assert.ErrorIs(t, err, model.ErrInvalidScope)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{`"everything" is not a valid choice.`}, e.Fields["scope"])
}

func TestNonAuthorPublishIsDeniedWithoutMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.alice, input("idea"))
	require.NoError(t, err)

	_, err = f.svc.Publish(ctx, f.bob, p.PostID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	stored, err := f.repo.FindByID(ctx, p.PostID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, stored.Status)
	assert.Equal(t, p.UpdatedAt, stored.UpdatedAt)

	_, err = f.svc.Publish(ctx, f.alice, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPublishTwiceSucceeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.alice, input("idea"))
	require.NoError(t, err)

	first, err := f.svc.Publish(ctx, f.alice, p.PostID)
	require.NoError(t, err)
	second, err := f.svc.Publish(ctx, f.alice, p.PostID)
	require.NoError(t, err)

	assert.Equal(t, model.StatusPublished, second.Status)
	assert.True(t, first.UpdatedAt.After(p.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, p.CreatedAt, second.CreatedAt)
}

func TestPublishScenarioAcrossUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.alice, input("Campus food delivery"))
	require.NoError(t, err)

	public, err := f.svc.List(ctx, f.bob, model.ScopePublic)
	require.NoError(t, err)
	assert.NotContains(t, ids(public), p.PostID)

	_, err = f.svc.Publish(ctx, f.bob, p.PostID)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	_, err = f.svc.Publish(ctx, f.alice, p.PostID)
	require.NoError(t, err)

	public, err = f.svc.List(ctx, f.bob, model.ScopePublic)
	require.NoError(t, err)
	assert.Contains(t, ids(public), p.PostID)
}

func TestGetVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.alice, input("idea"))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.alice, p.PostID)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.bob, p.PostID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.svc.Publish(ctx, f.alice, p.PostID)
	require.NoError(t, err)
	got, err := f.svc.Get(ctx, f.bob, p.PostID)
	require.NoError(t, err)
	assert.Equal(t, p.PostID, got.PostID)

	_, err = f.svc.Get(ctx, f.alice, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := input("idea")
	in.TargetMarket = shared.Some("students")
	p, err := f.svc.Create(ctx, f.alice, in)
	require.NoError(t, err)

	t.Run("non-author is denied", func(t *testing.T) {
		_, err := f.svc.Update(ctx, f.bob, p.PostID, input("hijack"), false)
		assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
	})

	t.Run("absent post", func(t *testing.T) {
		_, err := f.svc.Update(ctx, f.alice, 9999, input("x"), false)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("full update requires title and description", func(t *testing.T) {
		_, err := f.svc.Update(ctx, f.alice, p.PostID, model.PostInput{Title: shared.Some("only title")}, false)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		patch := model.PostInput{Category: shared.Some(model.CategoryFood)}
		updated, err := f.svc.Update(ctx, f.alice, p.PostID, patch, true)
		require.NoError(t, err)

		assert.Equal(t, "idea", updated.Title)
		assert.Equal(t, model.CategoryFood, updated.Category)
		require.NotNil(t, updated.TargetMarket)
		assert.Equal(t, "students", *updated.TargetMarket)
		assert.Equal(t, model.StatusDraft, updated.Status)
		assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))
		assert.Equal(t, f.alice, updated.Author.ID)
	})
}

func TestArchive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.alice, input("idea"))
	require.NoError(t, err)

	_, err = f.svc.Archive(ctx, f.bob, p.PostID)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	archived, err := f.svc.Archive(ctx, f.alice, p.PostID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, archived.Status)

	again, err := f.svc.Archive(ctx, f.alice, p.PostID)
	require.NoError(t, err)
	assert.Equal(t, archived.UpdatedAt, again.UpdatedAt)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.alice, input("idea"))
	require.NoError(t, err)

	err = f.svc.Delete(ctx, f.bob, p.PostID)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	require.NoError(t, f.svc.Delete(ctx, f.alice, p.PostID))

	err = f.svc.Delete(ctx, f.alice, p.PostID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
