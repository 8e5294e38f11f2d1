package enrollment

import (
	"context"
	"errors"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

// Skip reasons reported by BulkCreateUsers.
const (
	ReasonDuplicate = "duplicate"
	ReasonInvalid   = "invalid"
)

// SkippedUser is an item BulkCreateUsers did not create.
type SkippedUser struct {
	Email   string            `json:"email"`
	Reason  string            `json:"reason"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// BulkResult lists created users and skipped items, both in input order.
type BulkResult struct {
	Created []models.User `json:"creados"`
	Skipped []SkippedUser `json:"omitidos"`
}

// BulkCreateUsers creates each item independently, in order. An item's
// estado is kept when given and defaults to active. Duplicate or
// invalid items are skipped and reported. The batch is not atomic: when a
// store error (or ctx expiry) stops it, users created so far remain and the
// partial result is returned with the error.
func (m *Manager) BulkCreateUsers(ctx context.Context, items []NewUser) (BulkResult, error) {
	res := BulkResult{
		Created: make([]models.User, 0, len(items)),
		Skipped: []SkippedUser{},
	}

	for _, nu := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		u, err := m.create(ctx, nu, nu.Active == nil || *nu.Active)
		if err == nil {
			res.Created = append(res.Created, u)
			continue
		}

		var reason string
		switch {
		case errors.Is(err, apperr.ErrDuplicateKey):
			reason = ReasonDuplicate
		case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrNotFound):
			reason = ReasonInvalid
		default:
			m.log.Error("bulk create stopped",
				zap.Int("created", len(res.Created)),
				zap.Int("skipped", len(res.Skipped)),
				zap.Error(err))
			return res, err
		}

		m.log.Info("bulk create: user skipped",
			zap.String("email", nu.Email),
			zap.String("reason", reason),
			zap.String("error", err.Error()))
		res.Skipped = append(res.Skipped, SkippedUser{
			Email:   nu.Email,
			Reason:  reason,
			Message: err.Error(),
			Details: apperr.DetailsOf(err),
		})
	}
	return res, nil
}
