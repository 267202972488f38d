package constants

// Session
const (
	SessionCookieName   = "shift_session"
	ContextKeyAccountID = "account_id"
	ContextKeyAccount   = "account"
)

// PINLength is the exact length every credential must have.
const PINLength = 4

// MasterOverrideKey is a shared secret that bypasses the current-PIN
// check when changing a credential. It is never accepted as a login
// credential.
const MasterOverrideKey = "ktwk"

// ResetPIN is the value a manager-initiated reset assigns to an account.
const ResetPIN = "1111"

// DateLayout is the wire and storage format for all schedule dates.
const DateLayout = "2006-01-02"
