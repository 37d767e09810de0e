package session

// CookieName is the cookie that carries the session id
const CookieName = "wallet_session"

// ConnectRequest represents a request to link a wallet to the session
type ConnectRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// CheckResponse represents a session check response
type CheckResponse struct {
	Success       bool   `json:"success"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// DisconnectResponse represents a disconnect response
type DisconnectResponse struct {
	Success bool `json:"success"`
}
