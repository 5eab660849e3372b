package midtrans

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"MangaVerse-Backend/internal/utils"
	"MangaVerse-Backend/pkg/wallet"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	midtransGo "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	MidtransService interface {
		BuyTokens(ctx context.Context, req domain.BuyTokensRequest, userID string) (*domain.BuyTokensResponse, error)
		HandleNotification(ctx context.Context, notification domain.MidtransNotification) error
	}

	midtransService struct {
		midtransRepository MidtransRepository
		walletService      wallet.WalletService
		snapClient         snap.Client
	}
)

func NewMidtransService(midtransRepository MidtransRepository, walletService wallet.WalletService) MidtransService {
	env := midtransGo.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtransGo.Production
	}

	var snapClient snap.Client
	snapClient.New(utils.GetConfig("SERVER_KEY"), env)

	return &midtransService{
		midtransRepository: midtransRepository,
		walletService:      walletService,
		snapClient:         snapClient,
	}
}

// BuyTokens opens a Snap checkout for a token package. The wallet is not
// touched here: tokens are granted only when the gateway notifies settlement.
func (s *midtransService) BuyTokens(ctx context.Context, req domain.BuyTokensRequest, userID string) (*domain.BuyTokensResponse, error) {
	pkg, err := s.walletService.GetTokenPackageByID(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	packageUUID, err := uuid.Parse(pkg.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	orderID := fmt.Sprintf("tokens-%s", uuid.New().String())
	grossAmount := int64(pkg.Price)

	snapReq := &snap.Request{
		TransactionDetails: midtransGo.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtransGo.CustomerDetails{
			Email: req.Email,
		},
		Items: &[]midtransGo.ItemDetails{
			{
				ID:    pkg.ID,
				Name:  pkg.Name,
				Price: grossAmount,
				Qty:   1,
			},
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, domain.ErrPaymentFailed
	}

	transaction := &entities.PaymentTransaction{
		ID:            uuid.New(),
		OrderID:       orderID,
		UserID:        userUUID,
		PackageID:     packageUUID,
		GrossAmount:   grossAmount,
		TokensGranted: pkg.Amount,
		Status:        domain.PaymentStatusPending,
	}
	if err := s.midtransRepository.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	return &domain.BuyTokensResponse{
		PurchaseID: orderID,
		InvoiceURL: snapResp.RedirectURL,
	}, nil
}

// HandleNotification processes a midtrans HTTP notification. Settlement
// credits the wallet exactly once; replays of a settled order are ignored.
func (s *midtransService) HandleNotification(ctx context.Context, notification domain.MidtransNotification) error {
	if !s.verifySignature(notification) {
		return domain.ErrSignatureInvalid
	}

	transaction, err := s.midtransRepository.GetTransactionByOrderID(ctx, notification.OrderID)
	if err != nil {
		return err
	}

	if transaction.Status == domain.PaymentStatusSettlement {
		return nil
	}

	switch notification.TransactionStatus {
	case "capture":
		if notification.FraudStatus != "accept" {
			return nil
		}
		return s.settle(ctx, transaction)
	case "settlement":
		return s.settle(ctx, transaction)
	case "deny", "cancel", "expire":
		return s.midtransRepository.UpdateTransactionStatus(ctx, transaction.OrderID, domain.PaymentStatusFailed)
	default:
		return nil
	}
}

// settle grants the paid tokens, then marks the order settled. The credit
// comes first: a storage failure leaves the order pending so the gateway
// retry can finish the job, and the ledger reference keyed on the order id
// keeps a retry from granting the tokens twice when only the status write
// failed.
func (s *midtransService) settle(ctx context.Context, transaction *entities.PaymentTransaction) error {
	userID := transaction.UserID.String()

	credited, err := s.walletService.HasLedgerEntry(ctx, userID, domain.TransactionTypePurchase, transaction.OrderID)
	if err != nil {
		return err
	}
	if !credited {
		description := fmt.Sprintf("Purchased %d tokens", transaction.TokensGranted)
		if _, err := s.walletService.Credit(
			ctx, userID, transaction.TokensGranted,
			domain.CurrencyTokens, domain.TransactionTypePurchase,
			description, transaction.OrderID,
		); err != nil {
			return err
		}
	}

	return s.midtransRepository.UpdateTransactionStatus(ctx, transaction.OrderID, domain.PaymentStatusSettlement)
}

func (s *midtransService) verifySignature(notification domain.MidtransNotification) bool {
	payload := notification.OrderID + notification.StatusCode + notification.GrossAmount + utils.GetConfig("SERVER_KEY")
	hash := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(hash[:]) == notification.SignatureKey
}
