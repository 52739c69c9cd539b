package devwallet

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/AlexZinkM/docuchain-wallet/internal/common"
	keycrypto "github.com/AlexZinkM/docuchain-wallet/internal/crypto"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

const networkEthereum = "ethereum"

// GenerateWallet generates a new secp256k1 key and saves it to a .dcw file.
// Returns the generated address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, chainID uint64, password []byte) (address string, err error) {
	if filepath.Ext(filePath) != keycrypto.KeyFileExt {
		return "", fmt.Errorf("file must have %s extension", keycrypto.KeyFileExt)
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	privateKey := crypto.FromECDSA(key)
	defer clear(privateKey)

	address, err = common.NormalizeAddress(crypto.PubkeyToAddress(key.PublicKey).Hex())
	if err != nil {
		return "", err
	}

	qrCode, err := common.QRCodeBase64(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	keyFile := model.KeyFile{
		Network: networkEthereum,
		ChainID: chainID,
		Address: address,
		QR:      qrCode,
	}
	keyData := &model.KeyData{
		PrivateKey: privateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := keycrypto.EncryptKey(filePath, keyFile, keyData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt key: %w", err)
	}

	return address, nil
}
