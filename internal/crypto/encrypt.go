package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

// KeyFileExt is the extension every development keyfile must carry
const KeyFileExt = ".dcw"

// scrypt parameters for the development keyfile.
//
// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still
// unlocking on a laptop in about a second.
var scryptN = 1 << 18

const (
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncryptKey encrypts key data and writes it to a .dcw file
// password must be []byte for security (caller should zero it after use)
func EncryptKey(filePath string, keyFile model.KeyFile, keyData *model.KeyData, password []byte) error {
	if !strings.HasSuffix(filePath, KeyFileExt) {
		return fmt.Errorf("file must have %s extension", KeyFileExt)
	}
	if len(password) == 0 {
		return errors.New("password cannot be empty")
	}

	// Refuse to overwrite a non-empty file
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	sealed, err := seal(keyData, password)
	if err != nil {
		return err
	}
	keyFile.Salt = sealed.Salt
	keyFile.Nonce = sealed.Nonce
	keyFile.CipherText = sealed.CipherText

	return writeKeyFile(filePath, &keyFile)
}

// ReencryptKey decrypts a keyfile with oldPassword and rewrites it under newPassword
// with a fresh salt and nonce. Public fields (address, QR) are preserved.
func ReencryptKey(filePath string, oldPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return errors.New("new password cannot be empty")
	}

	keyFile, keyData, err := DecryptKey(filePath, oldPassword)
	if err != nil {
		return err
	}
	defer clear(keyData.PrivateKey)

	sealed, err := seal(keyData, newPassword)
	if err != nil {
		return err
	}
	keyFile.Salt = sealed.Salt
	keyFile.Nonce = sealed.Nonce
	keyFile.CipherText = sealed.CipherText

	return writeKeyFile(filePath, keyFile)
}

// seal derives a key from password and encrypts keyData with AES-GCM.
// Only Salt, Nonce and CipherText of the result are set.
func seal(keyData *model.KeyData, password []byte) (*model.KeyFile, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	return &model.KeyFile{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

func writeKeyFile(filePath string, keyFile *model.KeyFile) error {
	fileData, err := json.MarshalIndent(keyFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key file: %w", err)
	}

	// UTF-8 BOM for proper display in Windows editors
	fileDataWithBOM := append(append([]byte{}, utf8BOM...), fileData...)

	if err := os.WriteFile(filePath, fileDataWithBOM, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
