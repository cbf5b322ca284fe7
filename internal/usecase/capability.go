package usecase

import (
	"fmt"
	"strings"

	"bizbid/internal/domain/entity"
	"bizbid/pkg/errors"
)

// requireRole is the single capability check consumed by every operation.
func requireRole(user *entity.User, roles ...string) error {
	if user == nil {
		return errors.Unauthorized("Authentication required", nil)
	}
	if user.HasRole(roles...) {
		return nil
	}
	return errors.Forbidden(fmt.Sprintf("Requires role: %s", strings.Join(roles, " or ")), nil)
}
