package models

// PinStoreData is persisted between sessions under the "pin_store" local-KV
// key (spec §6.5). It is deleted on hard-lock or explicit PIN removal.
type PinStoreData struct {
	PinHash      []byte     `json:"pin_hash"`
	PinHashSalt  []byte     `json:"pin_hash_salt"`
	PinKeySalt   []byte     `json:"pin_key_salt"`
	EncryptedMAK []byte     `json:"encrypted_mak"` // nonce(24) || ciphertext+tag
	AAD          AADContext `json:"aad_context"`
	UserID       string     `json:"user_id"`
	VaultID      string     `json:"vault_id"`
	Version      int        `json:"version"`
}
