package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainDecision is the domain prefix for decision record hashes.
// Version suffix enables future algorithm migration.
const DomainDecision = "dicecommit/decision/v1"

// Hash computes the tamper-evidence hash for a decision record:
// SHA256(domain + 0x00 + canonical JSON). The null separator prevents
// domain/data boundary ambiguity.
func Hash(obj map[string]any) (string, error) {
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("hash record: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(DomainDecision))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
