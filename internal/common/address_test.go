package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddressLowercases(t *testing.T) {
	inputs := []string{
		"0x1203DC6F5D10556449E194C0C14F167BB3D72208",
		"0x1203dc6f5d10556449e194c0c14f167bb3d72208",
		"  0x1203Dc6f5D10556449e194C0c14f167bB3d72208 ",
	}
	for _, in := range inputs {
		got, err := NormalizeAddress(in)
		require.NoError(t, err)
		assert.Equal(t, "0x1203dc6f5d10556449e194c0c14f167bb3d72208", got)
		assert.Equal(t, strings.ToLower(got), got)
	}
}

func TestNormalizeAddressRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"1203dc6f5d10556449e194c0c14f167bb3d72208",
		"0x1203dc6f5d10556449e194c0c14f167bb3d7220",
		"0x1203dc6f5d10556449e194c0c14f167bb3d7220g",
	} {
		_, err := NormalizeAddress(in)
		assert.Error(t, err, in)
	}
}

func TestZeroAndSameAddress(t *testing.T) {
	assert.True(t, IsZeroAddress(""))
	assert.True(t, IsZeroAddress(ZeroAddress))
	assert.False(t, IsZeroAddress("0x1203dc6f5d10556449e194c0c14f167bb3d72208"))

	assert.True(t, SameAddress("0xABCDEF0000000000000000000000000000000001", "0xabcdef0000000000000000000000000000000001"))
	assert.False(t, SameAddress("0xabcdef0000000000000000000000000000000001", "0xabcdef0000000000000000000000000000000002"))
	assert.False(t, SameAddress("nope", "nope"))
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x1203...2208", ShortAddress("0x1203dc6f5d10556449e194c0c14f167bb3d72208"))
	assert.Equal(t, "short", ShortAddress("short"))
}

func TestChainIDHex(t *testing.T) {
	assert.Equal(t, "0xaa36a7", ChainIDHex(11155111))

	id, err := ParseChainID("0xAA36A7")
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), id)

	_, err = ParseChainID("11155111")
	assert.Error(t, err)
}
