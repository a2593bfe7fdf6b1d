package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerhouse/internal/core/apperror"
	"ledgerhouse/internal/core/types"
)

func strPtr(s string) *string { return &s }

func TestNewCustomer_Defaults(t *testing.T) {
	c := NewCustomer("CUST-001", "Acme Corp")

	assert.Equal(t, "CUST-001", c.Code)
	assert.Equal(t, "Acme Corp", c.Name)
	assert.Equal(t, TermsNet30, c.PaymentTerms)
	assert.True(t, c.CreditLimit.IsZero())
	assert.False(t, c.HasCreditLimit())
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(c *Customer)
		wantErr string
	}{
		{
			name:   "valid customer",
			mutate: func(c *Customer) {},
		},
		{
			name:    "missing name",
			mutate:  func(c *Customer) { c.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "unknown payment terms",
			mutate:  func(c *Customer) { c.PaymentTerms = "net_90" },
			wantErr: "invalid payment terms",
		},
		{
			name:    "negative credit limit",
			mutate:  func(c *Customer) { c.CreditLimit = types.MustMoney("-1") },
			wantErr: "credit limit cannot be negative",
		},
		{
			name:    "malformed email",
			mutate:  func(c *Customer) { c.Email = strPtr("not-an-email") },
			wantErr: "invalid email format",
		},
		{
			name:   "empty email is allowed",
			mutate: func(c *Customer) { c.Email = strPtr("") },
		},
		{
			name:   "valid email",
			mutate: func(c *Customer) { c.Email = strPtr("billing@acme.example") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCustomer("CUST-001", "Acme Corp")
			tt.mutate(c)

			err := c.Validate(ctx)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

func TestPaymentTermsDueDays(t *testing.T) {
	assert.Equal(t, 0, TermsDueOnReceipt.DueDays())
	assert.Equal(t, 15, TermsNet15.DueDays())
	assert.Equal(t, 30, TermsNet30.DueDays())
	assert.Equal(t, 60, TermsNet60.DueDays())
}

func TestHasCreditLimit(t *testing.T) {
	c := NewCustomer("CUST-002", "Globex")
	assert.False(t, c.HasCreditLimit())

	c.CreditLimit = types.MustMoney("5000")
	assert.True(t, c.HasCreditLimit())
}
