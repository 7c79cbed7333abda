package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// GroupUUID returns the stable id of the translation group named groupKey.
func GroupUUID(groupKey string) uuid.UUID {
	trimmed := strings.TrimSpace(groupKey)
	if trimmed == "" {
		return uuid.Nil
	}
	return UUID("mediasync:translation_group:" + trimmed)
}

// LinkUUID returns the stable id of the membership of assetID in a group.
func LinkUUID(groupID uuid.UUID, assetID string) uuid.UUID {
	return UUID("mediasync:translation_link:" + groupID.String() + ":" + strings.TrimSpace(assetID))
}
