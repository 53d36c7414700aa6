package domain

// User is the wallet-session profile. Address is the key.
type User struct {
	Address    string `json:"address"`
	Picture    string `json:"picture,omitempty"`
	Balance    string `json:"balance"` // raw base units as reported by the wallet RPC
	WalletName string `json:"walletName,omitempty"`
}
