package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Keys are prefixed per entity so layouts and cells never collide.
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

// LayoutUUID returns the stable identifier for a layout code.
func LayoutUUID(code string) uuid.UUID {
	return UUID("go-gridlayout:layout:" + strings.ToLower(strings.TrimSpace(code)))
}

// CellUUID returns the stable identifier for a seeded cell.
func CellUUID(layoutID uuid.UUID, key string) uuid.UUID {
	return UUID("go-gridlayout:cell:" + layoutID.String() + ":" + strings.TrimSpace(key))
}
