package model

// KeyFile represents .dcw file structure
type KeyFile struct {
	Network    string `json:"network"`
	ChainID    uint64 `json:"chainId"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeyData represents decrypted key material
type KeyData struct {
	PrivateKey []byte `json:"privateKey"` // 32 bytes secp256k1 scalar (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
