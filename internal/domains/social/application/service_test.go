package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
)

type fakeResolver struct {
	known       map[int64]*ports.GameRef
	upstream    map[int64]*ports.GameRef
	ensureCalls int
}

func (r *fakeResolver) Find(_ context.Context, steamAppID int64) (*ports.GameRef, error) {
	return r.known[steamAppID], nil
}

func (r *fakeResolver) Ensure(_ context.Context, steamAppID int64) (*ports.GameRef, error) {
	r.ensureCalls++
	if game, ok := r.known[steamAppID]; ok {
		return game, nil
	}
	game, ok := r.upstream[steamAppID]
	if !ok {
		return nil, nil
	}
	if r.known == nil {
		r.known = map[int64]*ports.GameRef{}
	}
	r.known[steamAppID] = game
	return game, nil
}

type fakeComments struct {
	byGame map[string][]*domain.Comment
	seq    int
}

func (f *fakeComments) Create(_ context.Context, comment *domain.Comment) error {
	f.seq++
	comment.ID = fmt.Sprintf("comment-%d", f.seq)
	comment.CreatedAt = time.Now()
	if f.byGame == nil {
		f.byGame = map[string][]*domain.Comment{}
	}
	f.byGame[comment.GameID] = append([]*domain.Comment{comment}, f.byGame[comment.GameID]...)
	return nil
}

func (f *fakeComments) ListByGame(_ context.Context, gameID string) ([]*domain.Comment, error) {
	out := f.byGame[gameID]
	if out == nil {
		out = []*domain.Comment{}
	}
	return out, nil
}

type fakeLikes struct {
	byApp map[int64]map[string]bool
}

func (f *fakeLikes) Toggle(_ context.Context, steamAppID int64, userID string) (domain.LikeToggle, error) {
	if f.byApp == nil {
		f.byApp = map[int64]map[string]bool{}
	}
	users := f.byApp[steamAppID]
	if users == nil {
		users = map[string]bool{}
		f.byApp[steamAppID] = users
	}
	action := domain.LikeAdded
	if users[userID] {
		delete(users, userID)
		action = domain.LikeRemoved
	} else {
		users[userID] = true
	}
	return domain.LikeToggle{Action: action, Count: len(users)}, nil
}

func (f *fakeLikes) Summary(_ context.Context, steamAppID int64, userID string) (domain.LikeSummary, error) {
	users := f.byApp[steamAppID]
	return domain.LikeSummary{Count: len(users), LikedByUser: users[userID]}, nil
}

type fakeRecs struct {
	records []*domain.Recommendation
	seq     int
}

func (f *fakeRecs) Create(_ context.Context, rec *domain.Recommendation) error {
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	rec.CreatedAt = time.Now()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRecs) ExistsForRecipient(_ context.Context, toID, gameID string) (bool, error) {
	for _, rec := range f.records {
		if rec.ToID == toID && rec.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecs) ListForRecipient(_ context.Context, toID string) ([]*domain.Recommendation, error) {
	out := []*domain.Recommendation{}
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].ToID == toID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeRecs) UpdateStatus(_ context.Context, id string, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			rec.Status = status
			return rec, nil
		}
	}
	return nil, ports.ErrNotFound
}

type fakeLists struct {
	byUser map[string]*domain.GameLists
}

func (f *fakeLists) entry(userID string) *domain.GameLists {
	if f.byUser == nil {
		f.byUser = map[string]*domain.GameLists{}
	}
	lists := f.byUser[userID]
	if lists == nil {
		lists = &domain.GameLists{}
		f.byUser[userID] = lists
	}
	return lists
}

func (f *fakeLists) Get(_ context.Context, userID string) (domain.GameLists, error) {
	return *f.entry(userID), nil
}

func (f *fakeLists) Add(_ context.Context, userID string, kind domain.ListKind, steamAppID int64) error {
	lists := f.entry(userID)
	if lists.Contains(kind, steamAppID) {
		return ports.ErrDuplicate
	}
	if kind == domain.ListPlayed {
		lists.Played = append(lists.Played, steamAppID)
	} else {
		lists.Wishlist = append(lists.Wishlist, steamAppID)
	}
	return nil
}

func (f *fakeLists) Remove(_ context.Context, userID string, kind domain.ListKind, steamAppID int64) error {
	lists := f.entry(userID)
	target := &lists.Played
	if kind == domain.ListWishlist {
		target = &lists.Wishlist
	}
	kept := (*target)[:0]
	for _, id := range *target {
		if id != steamAppID {
			kept = append(kept, id)
		}
	}
	*target = kept
	return nil
}

func newTestService(resolver *fakeResolver) (*Service, *fakeComments, *fakeLikes, *fakeRecs, *fakeLists) {
	comments := &fakeComments{}
	likes := &fakeLikes{}
	recs := &fakeRecs{}
	lists := &fakeLists{}
	return NewService(comments, likes, recs, lists, resolver), comments, likes, recs, lists
}

func TestAddComment_RequiresContent(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})

	_, err := svc.AddComment(context.Background(), "user-1", 440, "   ", nil)

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddComment_UnknownUpstreamIsNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})

	_, err := svc.AddComment(context.Background(), "user-1", 999999, "great", nil)

	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestAddComment_MaterializesEntryOnDemand(t *testing.T) {
	resolver := &fakeResolver{upstream: map[int64]*ports.GameRef{440: {ID: "game-440", SteamAppID: 440, Name: "Team Fortress 2"}}}
	svc, comments, _, _, _ := newTestService(resolver)

	rating := 5
	comment, err := svc.AddComment(context.Background(), "user-1", 440, "great", &rating)

	require.NoError(t, err)
	assert.Equal(t, "game-440", comment.GameID)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, 1, resolver.ensureCalls)
	stored, err := comments.ListByGame(context.Background(), "game-440")
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestListComments_AbsentEntryYieldsEmptyList(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})

	out, err := svc.ListComments(context.Background(), 440)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestToggleLike_RequiresUser(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})

	_, err := svc.ToggleLike(context.Background(), 440, "")

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleLike_FlipsAndCounts(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})
	ctx := context.Background()

	first, err := svc.ToggleLike(ctx, 440, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.LikeAdded, first.Action)
	assert.Equal(t, 1, first.Count)

	second, err := svc.ToggleLike(ctx, 440, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.LikeRemoved, second.Action)
	assert.Equal(t, 0, second.Count)

	summary, err := svc.LikeSummary(ctx, 440, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.False(t, summary.LikedByUser)
}

func recommendResolver() *fakeResolver {
	return &fakeResolver{upstream: map[int64]*ports.GameRef{570: {ID: "game-570", SteamAppID: 570, Name: "Dota 2"}}}
}

func TestRecommend_CreatesPending(t *testing.T) {
	svc, _, _, _, _ := newTestService(recommendResolver())

	rec, err := svc.Recommend(context.Background(), ports.RecommendInput{
		FromID: "user-1", ToID: "user-2", SteamAppID: 570, Reason: "try this",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, rec.Status)
	assert.Equal(t, "game-570", rec.GameID)
	assert.NotEmpty(t, rec.ID)
}

func TestRecommend_DuplicatePerRecipientAndGameConflicts(t *testing.T) {
	svc, _, _, _, _ := newTestService(recommendResolver())
	ctx := context.Background()
	input := ports.RecommendInput{FromID: "user-1", ToID: "user-2", SteamAppID: 570}

	_, err := svc.Recommend(ctx, input)
	require.NoError(t, err)

	_, err = svc.Recommend(ctx, input)
	require.ErrorIs(t, err, ErrConflict)
}

func TestRecommend_RecipientAlreadyPlayedIsRejected(t *testing.T) {
	svc, _, _, _, lists := newTestService(recommendResolver())
	ctx := context.Background()
	require.NoError(t, lists.Add(ctx, "user-2", domain.ListPlayed, 570))

	_, err := svc.Recommend(ctx, ports.RecommendInput{FromID: "user-1", ToID: "user-2", SteamAppID: 570})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_RecipientWishlistIsRejected(t *testing.T) {
	svc, _, _, _, lists := newTestService(recommendResolver())
	ctx := context.Background()
	require.NoError(t, lists.Add(ctx, "user-2", domain.ListWishlist, 570))

	_, err := svc.Recommend(ctx, ports.RecommendInput{FromID: "user-1", ToID: "user-2", SteamAppID: 570})

	require.ErrorIs(t, err, ErrAlreadyWishlisted)
}

func TestRecommend_RequiresRecipientAndApp(t *testing.T) {
	svc, _, _, _, _ := newTestService(recommendResolver())

	_, err := svc.Recommend(context.Background(), ports.RecommendInput{FromID: "user-1"})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRecommendationStatus(t *testing.T) {
	svc, _, _, _, _ := newTestService(recommendResolver())
	ctx := context.Background()
	rec, err := svc.Recommend(ctx, ports.RecommendInput{FromID: "user-1", ToID: "user-2", SteamAppID: 570})
	require.NoError(t, err)

	updated, err := svc.UpdateRecommendationStatus(ctx, rec.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)

	_, err = svc.UpdateRecommendationStatus(ctx, rec.ID, "bogus")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkPlayed_RemovesWishlistEntry(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})
	ctx := context.Background()

	_, err := svc.AddToWishlist(ctx, "user-1", 440)
	require.NoError(t, err)

	lists, err := svc.MarkPlayed(ctx, "user-1", 440)
	require.NoError(t, err)
	assert.Equal(t, []int64{440}, lists.Played)
	assert.Empty(t, lists.Wishlist)
}

func TestMarkPlayed_DuplicateConflicts(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})
	ctx := context.Background()

	_, err := svc.MarkPlayed(ctx, "user-1", 440)
	require.NoError(t, err)

	_, err = svc.MarkPlayed(ctx, "user-1", 440)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAddToWishlist_PlayedGameIsRejected(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})
	ctx := context.Background()

	_, err := svc.MarkPlayed(ctx, "user-1", 440)
	require.NoError(t, err)

	_, err = svc.AddToWishlist(ctx, "user-1", 440)
	require.ErrorIs(t, err, ErrAlreadyPlayed)
}

func TestAddToWishlist_DuplicateConflicts(t *testing.T) {
	svc, _, _, _, _ := newTestService(&fakeResolver{})
	ctx := context.Background()

	_, err := svc.AddToWishlist(ctx, "user-1", 440)
	require.NoError(t, err)

	_, err = svc.AddToWishlist(ctx, "user-1", 440)
	require.ErrorIs(t, err, ErrConflict)
}
