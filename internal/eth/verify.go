// Package eth implements EIP-191 personal_sign recovery for wallet
// authentication.
package eth

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the expected length of a secp256k1 wallet signature
// (r || s || v).
const SignatureLength = 65

// RecoverAddress recovers the address that produced signature over message
// using personal_sign semantics (the message is prefixed and keccak-hashed
// per EIP-191 before recovery).
func RecoverAddress(message string, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(signature))
	}

	// Wallets return v as 27/28; go-ethereum expects 0/1.
	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	hash := accounts.TextHash([]byte(message))

	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("public key recovery failed: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// VerifySignature recovers the signer of message from a hex-encoded signature
// and compares it to claimedAddress, case-insensitively. The claimed address
// is only a lookup key; the recovered address is authoritative.
func VerifySignature(message, hexSignature, claimedAddress string) (bool, error) {
	if !common.IsHexAddress(claimedAddress) {
		return false, fmt.Errorf("claimed address %q is not a valid ethereum address", claimedAddress)
	}

	sig, err := hexutil.Decode(hexSignature)
	if err != nil {
		return false, fmt.Errorf("failed to decode signature: %w", err)
	}

	recovered, err := RecoverAddress(message, sig)
	if err != nil {
		return false, err
	}

	return recovered == common.HexToAddress(claimedAddress), nil
}
