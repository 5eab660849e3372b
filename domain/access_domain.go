package domain

var (
	MessageSuccessCheckAccess = "access checked successfully"

	MessageFailedCheckAccess = "failed to check access"
)

// Reasons returned by the access evaluator. The first matching rule wins;
// a negative result is a normal outcome, never an error.
const (
	AccessReasonLoginRequired    = "LOGIN_REQUIRED"
	AccessReasonFreeContent      = "FREE_CONTENT"
	AccessReasonRoleOverride     = "ROLE_OVERRIDE"
	AccessReasonChapterPurchased = "CHAPTER_PURCHASED"
	AccessReasonMangaPurchased   = "MANGA_PURCHASED"
	AccessReasonSubscription     = "SUBSCRIPTION"
	AccessReasonPurchaseRequired = "PURCHASE_REQUIRED"
)

type (
	AccessResult struct {
		Granted bool   `json:"granted"`
		Reason  string `json:"reason"`
	}
)
