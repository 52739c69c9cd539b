package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/docuchain-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// keep the KDF cheap under test
	scryptN = 1 << 10
	os.Exit(m.Run())
}

func newKeyData() *model.KeyData {
	return &model.KeyData{
		PrivateKey: bytes.Repeat([]byte{0x42}, 32),
		CreatedAt:  "2026-01-02T03:04:05Z",
	}
}

func TestEncryptDecryptKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.dcw")
	keyFile := model.KeyFile{Network: "sepolia", ChainID: 11155111, Address: "0xabc", QR: "qr"}

	require.NoError(t, EncryptKey(path, keyFile, newKeyData(), []byte("secret")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, utf8BOM))

	got, data, err := DecryptKey(path, []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "0xabc", got.Address)
	assert.Equal(t, uint64(11155111), got.ChainID)
	assert.Equal(t, newKeyData().PrivateKey, data.PrivateKey)

	address, err := ReadKeyAddress(path)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", address)
}

func TestDecryptKeyWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.dcw")
	require.NoError(t, EncryptKey(path, model.KeyFile{Address: "0xabc"}, newKeyData(), []byte("secret")))

	_, _, err := DecryptKey(path, []byte("guess"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestEncryptKeyRefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dev.dcw")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	err := EncryptKey(path, model.KeyFile{}, newKeyData(), []byte("secret"))
	assert.ErrorIs(t, err, os.ErrExist)

	err = EncryptKey(filepath.Join(dir, "dev.json"), model.KeyFile{}, newKeyData(), []byte("secret"))
	assert.Error(t, err)
}

func TestReencryptKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.dcw")
	require.NoError(t, EncryptKey(path, model.KeyFile{Address: "0xabc", QR: "qr"}, newKeyData(), []byte("old")))

	require.NoError(t, ReencryptKey(path, []byte("old"), []byte("new")))

	_, _, err := DecryptKey(path, []byte("old"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	keyFile, data, err := DecryptKey(path, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, "qr", keyFile.QR)
	assert.Equal(t, newKeyData().PrivateKey, data.PrivateKey)
}

func TestReadKeyAddressMissingFile(t *testing.T) {
	_, err := ReadKeyAddress(filepath.Join(t.TempDir(), "missing.dcw"))
	assert.Error(t, err)
}
