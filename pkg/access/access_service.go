package access

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/pkg/manga"
	"MangaVerse-Backend/pkg/purchase"
	"MangaVerse-Backend/pkg/subscription"
	"MangaVerse-Backend/pkg/user"
	"context"
)

type (
	// AccessService answers "can this user read this content". It is a pure
	// read: a denied check is a normal result, never an error, and no check
	// ever mutates wallet, purchase, or subscription state.
	AccessService interface {
		HasChapterAccess(ctx context.Context, userID, chapterID string) (*domain.AccessResult, error)
		HasMangaAccess(ctx context.Context, userID, mangaID string) (*domain.AccessResult, error)
	}

	accessService struct {
		userRepository      user.UserRepository
		mangaRepository     manga.MangaRepository
		purchaseRepository  purchase.PurchaseRepository
		subscriptionService subscription.SubscriptionService
	}
)

func NewAccessService(
	userRepository user.UserRepository,
	mangaRepository manga.MangaRepository,
	purchaseRepository purchase.PurchaseRepository,
	subscriptionService subscription.SubscriptionService,
) AccessService {
	return &accessService{
		userRepository:      userRepository,
		mangaRepository:     mangaRepository,
		purchaseRepository:  purchaseRepository,
		subscriptionService: subscriptionService,
	}
}

func denied(reason string) *domain.AccessResult {
	return &domain.AccessResult{Granted: false, Reason: reason}
}

func granted(reason string) *domain.AccessResult {
	return &domain.AccessResult{Granted: true, Reason: reason}
}

// HasChapterAccess evaluates the access rules in order, first match wins:
// login, free content, role override, chapter purchase, manga purchase,
// subscription. Anything else requires a purchase.
func (s *accessService) HasChapterAccess(ctx context.Context, userID, chapterID string) (*domain.AccessResult, error) {
	chapter, err := s.mangaRepository.GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return denied(domain.AccessReasonLoginRequired), nil
	}

	if !chapter.IsPremium {
		return granted(domain.AccessReasonFreeContent), nil
	}

	caller, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if caller.Role == domain.RoleAdmin || caller.Role == domain.RoleMod {
		return granted(domain.AccessReasonRoleOverride), nil
	}

	ownsChapter, err := s.purchaseRepository.HasCompletedPurchase(ctx, userID, domain.ItemKindChapter, chapterID)
	if err != nil {
		return nil, err
	}
	if ownsChapter {
		return granted(domain.AccessReasonChapterPurchased), nil
	}

	ownsManga, err := s.purchaseRepository.HasCompletedPurchase(ctx, userID, domain.ItemKindManga, chapter.MangaID.String())
	if err != nil {
		return nil, err
	}
	if ownsManga {
		return granted(domain.AccessReasonMangaPurchased), nil
	}

	sub, err := s.subscriptionService.GetActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil && sub.Benefits.AllChaptersFree {
		return granted(domain.AccessReasonSubscription), nil
	}

	return denied(domain.AccessReasonPurchaseRequired), nil
}

func (s *accessService) HasMangaAccess(ctx context.Context, userID, mangaID string) (*domain.AccessResult, error) {
	mangaEntity, err := s.mangaRepository.GetMangaByID(ctx, mangaID)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return denied(domain.AccessReasonLoginRequired), nil
	}

	if !mangaEntity.IsPremium {
		return granted(domain.AccessReasonFreeContent), nil
	}

	caller, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if caller.Role == domain.RoleAdmin || caller.Role == domain.RoleMod {
		return granted(domain.AccessReasonRoleOverride), nil
	}

	ownsManga, err := s.purchaseRepository.HasCompletedPurchase(ctx, userID, domain.ItemKindManga, mangaID)
	if err != nil {
		return nil, err
	}
	if ownsManga {
		return granted(domain.AccessReasonMangaPurchased), nil
	}

	sub, err := s.subscriptionService.GetActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil && sub.Benefits.AllChaptersFree {
		return granted(domain.AccessReasonSubscription), nil
	}

	return denied(domain.AccessReasonPurchaseRequired), nil
}
