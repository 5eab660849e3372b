package midtrans

import (
	"MangaVerse-Backend/domain"
	"MangaVerse-Backend/entities"
	"MangaVerse-Backend/pkg/wallet"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memMidtransRepository struct {
	transactions map[string]*entities.PaymentTransaction
}

func (r *memMidtransRepository) CreateTransaction(_ context.Context, transaction *entities.PaymentTransaction) error {
	r.transactions[transaction.OrderID] = transaction
	return nil
}

func (r *memMidtransRepository) GetTransactionByOrderID(_ context.Context, orderID string) (*entities.PaymentTransaction, error) {
	transaction, ok := r.transactions[orderID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

func (r *memMidtransRepository) UpdateTransactionStatus(_ context.Context, orderID, status string) error {
	transaction, ok := r.transactions[orderID]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	transaction.Status = status
	return nil
}

type creditCall struct {
	userID      string
	amount      int
	txType      string
	referenceID string
}

// creditRecorder implements Credit and the ledger lookup backing it; the
// notification flow never calls anything else on the wallet service.
type creditRecorder struct {
	wallet.WalletService
	credits      []creditCall
	failCredits  int
	creditErrors int
}

func (c *creditRecorder) Credit(_ context.Context, userID string, amount int, currency, txType, description, referenceID string) (int, error) {
	if c.failCredits > 0 {
		c.failCredits--
		c.creditErrors++
		return 0, errStorageDown
	}
	c.credits = append(c.credits, creditCall{userID: userID, amount: amount, txType: txType, referenceID: referenceID})
	return amount, nil
}

func (c *creditRecorder) HasLedgerEntry(_ context.Context, userID, txType, referenceID string) (bool, error) {
	for _, call := range c.credits {
		if call.userID == userID && call.txType == txType && call.referenceID == referenceID {
			return true, nil
		}
	}
	return false, nil
}

var errStorageDown = errors.New("storage unavailable")

// flakyStatusRepository drops a number of status writes before behaving.
type flakyStatusRepository struct {
	*memMidtransRepository
	failUpdates int
}

func (r *flakyStatusRepository) UpdateTransactionStatus(ctx context.Context, orderID, status string) error {
	if r.failUpdates > 0 {
		r.failUpdates--
		return errStorageDown
	}
	return r.memMidtransRepository.UpdateTransactionStatus(ctx, orderID, status)
}

func signature(orderID, statusCode, grossAmount, serverKey string) string {
	hash := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(hash[:])
}

func pendingTransaction(repo *memMidtransRepository, tokens int) *entities.PaymentTransaction {
	transaction := &entities.PaymentTransaction{
		ID:            uuid.New(),
		OrderID:       "tokens-" + uuid.New().String(),
		UserID:        uuid.New(),
		PackageID:     uuid.New(),
		GrossAmount:   75000,
		TokensGranted: tokens,
		Status:        domain.PaymentStatusPending,
	}
	repo.transactions[transaction.OrderID] = transaction
	return transaction
}

func newTestService(repo MidtransRepository, recorder wallet.WalletService) *midtransService {
	return &midtransService{
		midtransRepository: repo,
		walletService:      recorder,
	}
}

func TestHandleNotification_SettlementCreditsOnce(t *testing.T) {
	repo := &memMidtransRepository{transactions: make(map[string]*entities.PaymentTransaction)}
	recorder := &creditRecorder{}
	service := newTestService(repo, recorder)
	transaction := pendingTransaction(repo, 130)

	notification := domain.MidtransNotification{
		OrderID:           transaction.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "75000.00",
	}
	notification.SignatureKey = signature(notification.OrderID, notification.StatusCode, notification.GrossAmount, "")

	require.NoError(t, service.HandleNotification(context.Background(), notification))
	assert.Equal(t, domain.PaymentStatusSettlement, transaction.Status)
	require.Len(t, recorder.credits, 1)
	assert.Equal(t, transaction.UserID.String(), recorder.credits[0].userID)
	assert.Equal(t, 130, recorder.credits[0].amount)
	assert.Equal(t, domain.TransactionTypePurchase, recorder.credits[0].txType)

	// Gateways retry notifications; a replay must not grant tokens again
	require.NoError(t, service.HandleNotification(context.Background(), notification))
	assert.Len(t, recorder.credits, 1)
}

func TestHandleNotification_CreditFailureKeepsOrderPending(t *testing.T) {
	repo := &memMidtransRepository{transactions: make(map[string]*entities.PaymentTransaction)}
	recorder := &creditRecorder{failCredits: 1}
	service := newTestService(repo, recorder)
	transaction := pendingTransaction(repo, 130)

	notification := domain.MidtransNotification{
		OrderID:           transaction.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "75000.00",
	}
	notification.SignatureKey = signature(notification.OrderID, notification.StatusCode, notification.GrossAmount, "")

	// The user has paid; a failed credit must not eat the notification
	err := service.HandleNotification(context.Background(), notification)
	assert.ErrorIs(t, err, errStorageDown)
	assert.Equal(t, domain.PaymentStatusPending, transaction.Status)
	assert.Empty(t, recorder.credits)

	// The gateway retry now grants the tokens
	require.NoError(t, service.HandleNotification(context.Background(), notification))
	assert.Equal(t, domain.PaymentStatusSettlement, transaction.Status)
	require.Len(t, recorder.credits, 1)
	assert.Equal(t, 130, recorder.credits[0].amount)
}

func TestHandleNotification_StatusWriteFailureDoesNotDoubleCredit(t *testing.T) {
	inner := &memMidtransRepository{transactions: make(map[string]*entities.PaymentTransaction)}
	repo := &flakyStatusRepository{memMidtransRepository: inner, failUpdates: 1}
	recorder := &creditRecorder{}
	service := newTestService(repo, recorder)
	transaction := pendingTransaction(inner, 130)

	notification := domain.MidtransNotification{
		OrderID:           transaction.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "75000.00",
	}
	notification.SignatureKey = signature(notification.OrderID, notification.StatusCode, notification.GrossAmount, "")

	// Credit lands but the status write fails, the order stays pending
	err := service.HandleNotification(context.Background(), notification)
	assert.ErrorIs(t, err, errStorageDown)
	assert.Equal(t, domain.PaymentStatusPending, transaction.Status)
	require.Len(t, recorder.credits, 1)

	// The retry sees the ledger entry and only finishes the status write
	require.NoError(t, service.HandleNotification(context.Background(), notification))
	assert.Equal(t, domain.PaymentStatusSettlement, transaction.Status)
	assert.Len(t, recorder.credits, 1)
}

func TestHandleNotification_InvalidSignature(t *testing.T) {
	repo := &memMidtransRepository{transactions: make(map[string]*entities.PaymentTransaction)}
	recorder := &creditRecorder{}
	service := newTestService(repo, recorder)
	transaction := pendingTransaction(repo, 130)

	notification := domain.MidtransNotification{
		OrderID:           transaction.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "75000.00",
		SignatureKey:      "forged",
	}

	err := service.HandleNotification(context.Background(), notification)
	assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
	assert.Equal(t, domain.PaymentStatusPending, transaction.Status)
	assert.Empty(t, recorder.credits)
}

func TestHandleNotification_FailureStates(t *testing.T) {
	for _, status := range []string{"deny", "cancel", "expire"} {
		t.Run(status, func(t *testing.T) {
			repo := &memMidtransRepository{transactions: make(map[string]*entities.PaymentTransaction)}
			recorder := &creditRecorder{}
			service := newTestService(repo, recorder)
			transaction := pendingTransaction(repo, 130)

			notification := domain.MidtransNotification{
				OrderID:           transaction.OrderID,
				TransactionStatus: status,
				StatusCode:        "202",
				GrossAmount:       "75000.00",
			}
			notification.SignatureKey = signature(notification.OrderID, notification.StatusCode, notification.GrossAmount, "")

			require.NoError(t, service.HandleNotification(context.Background(), notification))
			assert.Equal(t, domain.PaymentStatusFailed, transaction.Status)
			assert.Empty(t, recorder.credits)
		})
	}
}

func TestHandleNotification_UnknownOrder(t *testing.T) {
	repo := &memMidtransRepository{transactions: make(map[string]*entities.PaymentTransaction)}
	service := newTestService(repo, &creditRecorder{})

	notification := domain.MidtransNotification{
		OrderID:           "tokens-missing",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "75000.00",
	}
	notification.SignatureKey = signature(notification.OrderID, notification.StatusCode, notification.GrossAmount, "")

	err := service.HandleNotification(context.Background(), notification)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
