// Package savingsv1 holds the wire messages and service descriptors of the
// savings API. Messages travel as JSON over gRPC (see codec.go).
package savingsv1

// Deposit is one ledger record as seen by clients.
type Deposit struct {
	Position  int32  `json:"position"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note"`
}

// User is one credential record.
type User struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type DepositRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

type DepositResponse struct {
	Deposit *Deposit `json:"deposit"`
	// ReceiptPath is empty when no receipt was written.
	ReceiptPath string `json:"receipt_path,omitempty"`
	Summary     string `json:"summary"`
}

type GetBalanceRequest struct{}

type GetBalanceResponse struct {
	Username string `json:"username"`
	Total    int64  `json:"total"`
}

type ListMyDepositsRequest struct{}

type ListMyDepositsResponse struct {
	Deposits []*Deposit `json:"deposits"`
	Total    int64      `json:"total"`
}

type ListDepositsRequest struct {
	User string `json:"user,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type ListDepositsResponse struct {
	Deposits []*Deposit `json:"deposits"`
	Total    int64      `json:"total"`
}

type GetTotalRequest struct{}

type GetTotalResponse struct {
	Total int64 `json:"total"`
}

type DeleteDepositRequest struct {
	Position int32 `json:"position"`
	// Expected, when set, must match the record at Position or nothing is deleted.
	Expected *Deposit `json:"expected,omitempty"`
}

type DeleteDepositResponse struct {
	Total int64 `json:"total"`
}

type ClearLedgerRequest struct{}

type ClearLedgerResponse struct{}

type ExportLedgerRequest struct{}

type ExportLedgerResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}
