package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fleetyard/fleetagent/core/model"
)

// Fingerprint derives the dedup identity of an action: a SHA-256 digest over
// vehicle, kind, status, reason, expiry and recipient. The reason text is
// deliberately part of the digest, so a changed mileage delta produces a
// fresh, re-sendable fingerprint even for the same vehicle and kind.
func Fingerprint(a model.Action) string {
	base := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		a.Vehicle, a.Kind, a.Status, a.Reason, a.MOTExpiryString(), a.Recipient)
	sum := sha256.Sum256([]byte(base))
	return hex.EncodeToString(sum[:])
}
