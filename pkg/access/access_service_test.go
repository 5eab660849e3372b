package access

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepository struct {
	users map[string]*entities.User
}

func (r *memUserRepository) CreateUser(_ context.Context, u *entities.User) error {
	r.users[u.ID.String()] = u
	return nil
}

func (r *memUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepository) UpdateUser(_ context.Context, u *entities.User) error {
	r.users[u.ID.String()] = u
	return nil
}

type memMangaRepository struct {
	mangas   map[string]*entities.Manga
	chapters map[string]*entities.Chapter
}

func (r *memMangaRepository) CreateManga(_ context.Context, m *entities.Manga) error {
	r.mangas[m.ID.String()] = m
	return nil
}

func (r *memMangaRepository) GetMangas(_ context.Context, search string, page, limit int) ([]*entities.Manga, int64, error) {
	return nil, 0, nil
}

func (r *memMangaRepository) GetMangaByID(_ context.Context, id string) (*entities.Manga, error) {
	m, ok := r.mangas[id]
	if !ok {
		return nil, domain.ErrMangaNotFound
	}
	return m, nil
}

func (r *memMangaRepository) UpdateManga(_ context.Context, m *entities.Manga) error {
	r.mangas[m.ID.String()] = m
	return nil
}

func (r *memMangaRepository) IncrementViewCount(_ context.Context, id string) error { return nil }

func (r *memMangaRepository) CreateChapter(_ context.Context, ch *entities.Chapter) error {
	r.chapters[ch.ID.String()] = ch
	return nil
}

func (r *memMangaRepository) GetChaptersByManga(_ context.Context, mangaID string) ([]*entities.Chapter, error) {
	return nil, nil
}

func (r *memMangaRepository) GetChapterByID(_ context.Context, id string) (*entities.Chapter, error) {
	ch, ok := r.chapters[id]
	if !ok {
		return nil, domain.ErrChapterNotFound
	}
	return ch, nil
}

func (r *memMangaRepository) GetPremiumChaptersByManga(_ context.Context, mangaID string) ([]*entities.Chapter, error) {
	return nil, nil
}

type memPurchaseRepository struct {
	purchases []*entities.Purchase
}

func (r *memPurchaseRepository) CreatePurchase(_ context.Context, p *entities.Purchase) error {
	r.purchases = append(r.purchases, p)
	return nil
}

func (r *memPurchaseRepository) GetPurchaseByID(_ context.Context, id string) (*entities.Purchase, error) {
	return nil, domain.ErrPurchaseNotFound
}

func (r *memPurchaseRepository) GetUserPurchases(_ context.Context, userID string, page, limit int) ([]*entities.Purchase, int64, error) {
	return nil, 0, nil
}

func (r *memPurchaseRepository) HasCompletedPurchase(_ context.Context, userID, itemType, itemID string) (bool, error) {
	for _, p := range r.purchases {
		if p.UserID.String() == userID && p.ItemType == itemType && p.ItemID.String() == itemID && p.Status == domain.PurchaseStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPurchaseRepository) MarkRefunded(_ context.Context, id string, refundedAt time.Time, reason string) error {
	return nil
}

func (r *memPurchaseRepository) ReinstateCompleted(_ context.Context, id string) error {
	return nil
}

// fakeSubscriptionService serves GetActiveSubscription from a map; the
// evaluator never calls the mutating operations.
type fakeSubscriptionService struct {
	active map[string]*domain.Subscription
}

func (f *fakeSubscriptionService) GetActiveSubscription(_ context.Context, userID string) (*domain.Subscription, error) {
	return f.active[userID], nil
}

func (f *fakeSubscriptionService) Subscribe(_ context.Context, req domain.SubscribeRequest, userID string) (*domain.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionService) Cancel(_ context.Context, req domain.CancelSubscriptionRequest, userID string) (*domain.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionService) RevokeSubscription(_ context.Context, subscriptionID, reason string) error {
	return nil
}

func (f *fakeSubscriptionService) GetPlans(_ context.Context) []*domain.SubscriptionPlan {
	return nil
}

func (f *fakeSubscriptionService) GetBenefits(_ context.Context, userID string) (*domain.SubscriptionBenefits, error) {
	return nil, nil
}

func (f *fakeSubscriptionService) GetHistory(_ context.Context, userID string, page, limit int) ([]*domain.Subscription, int64, error) {
	return nil, 0, nil
}

type fixture struct {
	service      AccessService
	userRepo     *memUserRepository
	mangaRepo    *memMangaRepository
	purchaseRepo *memPurchaseRepository
	subs         *fakeSubscriptionService
}

func newFixture() *fixture {
	userRepo := &memUserRepository{users: make(map[string]*entities.User)}
	mangaRepo := &memMangaRepository{
		mangas:   make(map[string]*entities.Manga),
		chapters: make(map[string]*entities.Chapter),
	}
	purchaseRepo := &memPurchaseRepository{}
	subs := &fakeSubscriptionService{active: make(map[string]*domain.Subscription)}
	return &fixture{
		service:      NewAccessService(userRepo, mangaRepo, purchaseRepo, subs),
		userRepo:     userRepo,
		mangaRepo:    mangaRepo,
		purchaseRepo: purchaseRepo,
		subs:         subs,
	}
}

func (f *fixture) addUser(role string) *entities.User {
	u := &entities.User{ID: uuid.New(), Role: role}
	f.userRepo.users[u.ID.String()] = u
	return u
}

func (f *fixture) addChapter(premium bool) *entities.Chapter {
	ch := &entities.Chapter{ID: uuid.New(), MangaID: uuid.New(), IsPremium: premium}
	f.mangaRepo.chapters[ch.ID.String()] = ch
	return ch
}

func (f *fixture) addManga(premium bool) *entities.Manga {
	m := &entities.Manga{ID: uuid.New(), IsPremium: premium}
	f.mangaRepo.mangas[m.ID.String()] = m
	return m
}

func (f *fixture) grantPurchase(userID uuid.UUID, itemType string, itemID uuid.UUID) {
	f.purchaseRepo.purchases = append(f.purchaseRepo.purchases, &entities.Purchase{
		ID:       uuid.New(),
		UserID:   userID,
		ItemType: itemType,
		ItemID:   itemID,
		Status:   domain.PurchaseStatusCompleted,
	})
}

func (f *fixture) grantSubscription(userID string, allChaptersFree bool) {
	f.subs.active[userID] = &domain.Subscription{
		ID:       uuid.New().String(),
		IsActive: true,
		Benefits: domain.SubscriptionBenefits{AllChaptersFree: allChaptersFree},
	}
}

func TestChapterAccess_AnonymousIsAlwaysDenied(t *testing.T) {
	f := newFixture()
	free := f.addChapter(false)
	premium := f.addChapter(true)

	// Even free content requires login before anything else is considered
	for _, chapterID := range []string{free.ID.String(), premium.ID.String()} {
		result, err := f.service.HasChapterAccess(context.Background(), "", chapterID)
		require.NoError(t, err)
		assert.False(t, result.Granted)
		assert.Equal(t, domain.AccessReasonLoginRequired, result.Reason)
	}
}

func TestChapterAccess_FreeContent(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	chapter := f.addChapter(false)

	result, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), chapter.ID.String())
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, domain.AccessReasonFreeContent, result.Reason)
}

func TestChapterAccess_RoleOverride(t *testing.T) {
	f := newFixture()
	chapter := f.addChapter(true)

	for _, role := range []string{domain.RoleAdmin, domain.RoleMod} {
		staff := f.addUser(role)
		result, err := f.service.HasChapterAccess(context.Background(), staff.ID.String(), chapter.ID.String())
		require.NoError(t, err)
		assert.True(t, result.Granted)
		assert.Equal(t, domain.AccessReasonRoleOverride, result.Reason)
	}
}

func TestChapterAccess_ChapterPurchase(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	chapter := f.addChapter(true)
	f.grantPurchase(reader.ID, domain.ItemKindChapter, chapter.ID)

	result, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), chapter.ID.String())
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, domain.AccessReasonChapterPurchased, result.Reason)
}

func TestChapterAccess_MangaPurchaseCoversChapters(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	chapter := f.addChapter(true)
	f.grantPurchase(reader.ID, domain.ItemKindManga, chapter.MangaID)

	result, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), chapter.ID.String())
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, domain.AccessReasonMangaPurchased, result.Reason)
}

func TestChapterAccess_Subscription(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	chapter := f.addChapter(true)
	f.grantSubscription(reader.ID.String(), true)

	result, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), chapter.ID.String())
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, domain.AccessReasonSubscription, result.Reason)
}

func TestChapterAccess_SubscriptionWithoutChapterBenefit(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	chapter := f.addChapter(true)
	f.grantSubscription(reader.ID.String(), false)

	result, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), chapter.ID.String())
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, domain.AccessReasonPurchaseRequired, result.Reason)
}

func TestChapterAccess_PurchaseRequired(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	chapter := f.addChapter(true)

	result, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), chapter.ID.String())
	require.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, domain.AccessReasonPurchaseRequired, result.Reason)
}

func TestChapterAccess_PurchaseWinsOverSubscription(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	chapter := f.addChapter(true)
	f.grantPurchase(reader.ID, domain.ItemKindChapter, chapter.ID)
	f.grantSubscription(reader.ID.String(), true)

	result, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), chapter.ID.String())
	require.NoError(t, err)
	assert.True(t, result.Granted)
	assert.Equal(t, domain.AccessReasonChapterPurchased, result.Reason)
}

func TestChapterAccess_UnknownChapter(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)

	_, err := f.service.HasChapterAccess(context.Background(), reader.ID.String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrChapterNotFound)
}

func TestMangaAccess(t *testing.T) {
	f := newFixture()
	reader := f.addUser(domain.RoleUser)
	owner := f.addUser(domain.RoleUser)
	subscriber := f.addUser(domain.RoleUser)
	freeManga := f.addManga(false)
	premiumManga := f.addManga(true)

	f.grantPurchase(owner.ID, domain.ItemKindManga, premiumManga.ID)
	f.grantSubscription(subscriber.ID.String(), true)

	cases := []struct {
		name        string
		userID      string
		mangaID     string
		wantGranted bool
		wantReason  string
	}{
		{"anonymous", "", freeManga.ID.String(), false, domain.AccessReasonLoginRequired},
		{"free manga", reader.ID.String(), freeManga.ID.String(), true, domain.AccessReasonFreeContent},
		{"premium without purchase", reader.ID.String(), premiumManga.ID.String(), false, domain.AccessReasonPurchaseRequired},
		{"premium with purchase", owner.ID.String(), premiumManga.ID.String(), true, domain.AccessReasonMangaPurchased},
		{"premium with subscription", subscriber.ID.String(), premiumManga.ID.String(), true, domain.AccessReasonSubscription},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := f.service.HasMangaAccess(context.Background(), tc.userID, tc.mangaID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantGranted, result.Granted)
			assert.Equal(t, tc.wantReason, result.Reason)
		})
	}
}

func TestMangaAccess_UnknownManga(t *testing.T) {
	f := newFixture()

	_, err := f.service.HasMangaAccess(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrMangaNotFound)
}
