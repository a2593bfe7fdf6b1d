package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerhouse/internal/core/entity"
	"ledgerhouse/internal/domain/catalogs/customer"
)

type flatRow struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Hidden string `db:"-"`
	NoTag  string
}

func TestExtractDBColumns_Flat(t *testing.T) {
	cols := ExtractDBColumns[flatRow]()
	assert.Equal(t, []string{"id", "name"}, cols)
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[customer.Customer]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "email")
	assert.Contains(t, cols, "credit_limit")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	email := "acme@example.com"
	c := &customer.Customer{
		Catalog: entity.NewCatalog("CUST-0001", "Acme"),
		Email:   &email,
	}

	m := StructToMap(c)

	assert.Equal(t, "CUST-0001", m["code"])
	assert.Equal(t, "Acme", m["name"])
	assert.Equal(t, &email, m["email"])
	assert.Equal(t, c.ID, m["id"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
