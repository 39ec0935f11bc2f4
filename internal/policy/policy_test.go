package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
)

func TestRequireWarehouse(t *testing.T) {
	admin := domain.NewActor(1, "admin", domain.RoleAdmin, nil)
	user := domain.NewActor(2, "maria", domain.RoleUser, []int64{10, 11})

	tests := []struct {
		name      string
		actor     *domain.Actor
		warehouse int64
		wantErr   interface{}
	}{
		{"admin sem atribuição", admin, 99, nil},
		{"user com o armazém", user, 10, nil},
		{"user sem o armazém", user, 12, &apperror.ForbiddenError{}},
		{"sem ator", nil, 10, &apperror.UnauthorizedError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireWarehouse(tt.actor, tt.warehouse)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.IsType(t, tt.wantErr, err)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(domain.NewActor(1, "admin", domain.RoleAdmin, nil)))
	assert.IsType(t, &apperror.ForbiddenError{}, RequireAdmin(domain.NewActor(2, "maria", domain.RoleUser, []int64{10})))
	assert.IsType(t, &apperror.UnauthorizedError{}, RequireAdmin(nil))
}

func TestRequireAuthenticated(t *testing.T) {
	assert.NoError(t, RequireAuthenticated(domain.NewActor(2, "maria", domain.RoleUser, nil)))
	assert.IsType(t, &apperror.UnauthorizedError{}, RequireAuthenticated(nil))
}
