// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Email trims and lower-cases an address. Emails are the user business key,
// so every lookup and write must pass through here.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses inner runs of spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// URL trims an image/avatar reference. Empty means "no image".
func URL(s string) string {
	return strings.TrimSpace(s)
}

// ObjectIDs removes duplicates while keeping first-seen order.
func ObjectIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	if len(ids) == 0 {
		return []primitive.ObjectID{}
	}
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
