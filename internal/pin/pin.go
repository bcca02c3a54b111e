// Package pin implements the PIN quick-unlock subsystem of spec §4.5: a PIN
// hash used purely for verification, and a PIN-derived key used to wrap the
// Manifest Authentication/encryption Key so that unlocking with a short PIN
// never requires re-deriving the full password-based key hierarchy.
//
// PIN KDF parameters are fixed by this package, independent of whatever
// Argon2id parameters the server has on file for the password path.
package pin

import (
	"github.com/lockmark/core/internal/cryptoprim"
)

// Fixed Argon2id parameters for both PIN-hash and PIN-key derivation, per
// spec §4.5: parallelism=1, iterations=3, memory=64 MiB, output 32 bytes.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 1
	keyLen       = 32

	// saltLen is the length of both pin_hash_salt and pin_key_salt.
	saltLen = 16
)

// Setup generates fresh pin_hash_salt and pin_key_salt, computes pin_hash,
// derives a pin_key, and seals mak under it with aad. It returns the four
// values that belong in models.PinStoreData: PinHash, PinHashSalt,
// PinKeySalt, and the nonce‖ciphertext EncryptedMAK blob. The derived
// pin_key is zeroized before returning.
func Setup(pinCode, mak, aad []byte) (pinHash, pinHashSalt, pinKeySalt, encryptedMAK []byte, err error) {
	pinHashSalt, err = cryptoprim.RandomBytes(saltLen)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	pinKeySalt, err = cryptoprim.RandomBytes(saltLen)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	pinHash, err = hashPIN(pinCode, pinHashSalt)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	pinKey, err := derivePINKey(pinCode, pinKeySalt)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	defer cryptoprim.Zeroize(pinKey)

	nonce, err := cryptoprim.RandomBytes(cryptoprim.NonceSize)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ct, err := cryptoprim.AEADSeal(pinKey, nonce, aad, mak)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	encryptedMAK = make([]byte, 0, len(nonce)+len(ct))
	encryptedMAK = append(encryptedMAK, nonce...)
	encryptedMAK = append(encryptedMAK, ct...)

	return pinHash, pinHashSalt, pinKeySalt, encryptedMAK, nil
}

// Verify recomputes the PIN hash with pinHashSalt and compares it against
// storedHash in constant time, irrespective of any length mismatch. Returns
// ErrWrongPIN if they differ.
func Verify(pinCode, pinHashSalt, storedHash []byte) error {
	candidate, err := hashPIN(pinCode, pinHashSalt)
	if err != nil {
		return err
	}
	defer cryptoprim.Zeroize(candidate)

	// Compare against a copy padded/truncated to the candidate's length so
	// the comparison time does not depend on len(storedHash).
	padded := make([]byte, len(candidate))
	copy(padded, storedHash)
	equal := cryptoprim.ConstantTimeEqual(candidate, padded)
	cryptoprim.Zeroize(padded)
	if !equal || len(storedHash) != len(candidate) {
		return ErrWrongPIN
	}
	return nil
}

// UnwrapMAK derives pin_key from pinKeySalt and decrypts encryptedMAK
// (nonce‖ciphertext+tag) under it with aad, returning the recovered MAK. The
// derived pin_key is zeroized before returning, on both success and failure.
func UnwrapMAK(pinCode, pinKeySalt, encryptedMAK, aad []byte) ([]byte, error) {
	if len(encryptedMAK) < cryptoprim.NonceSize+cryptoprim.TagSize {
		return nil, ErrMalformed
	}
	nonce, ct := encryptedMAK[:cryptoprim.NonceSize], encryptedMAK[cryptoprim.NonceSize:]

	pinKey, err := derivePINKey(pinCode, pinKeySalt)
	if err != nil {
		return nil, err
	}
	defer cryptoprim.Zeroize(pinKey)

	mak, err := cryptoprim.AEADOpen(pinKey, nonce, aad, ct)
	if err != nil {
		return nil, ErrAuthFail
	}
	return mak, nil
}

func hashPIN(pinCode, salt []byte) ([]byte, error) {
	return cryptoprim.KDFArgon2id(pinCode, salt, argonMemory, argonTime, argonThreads, keyLen)
}

func derivePINKey(pinCode, salt []byte) ([]byte, error) {
	return cryptoprim.KDFArgon2id(pinCode, salt, argonMemory, argonTime, argonThreads, keyLen)
}
