package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.False(t, IsDuplicateKeyErr(errors.New("disk on fire")))

	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))

	// dialect-specific messages
	assert.True(t, IsDuplicateKeyErr(errors.New(`duplicate key value violates unique constraint "users_email_key"`)))
	assert.True(t, IsDuplicateKeyErr(errors.New("Error 1062: Duplicate entry 'a@b.c' for key 'email'")))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: users.email")))
}

func TestIsForeignKeyErr(t *testing.T) {
	assert.False(t, IsForeignKeyErr(nil))
	assert.False(t, IsForeignKeyErr(errors.New("disk on fire")))

	assert.True(t, IsForeignKeyErr(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyErr(fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated)))

	assert.True(t, IsForeignKeyErr(errors.New(`insert or update on table "contacts" violates foreign key constraint "contacts_company_id_fkey"`)))
	assert.True(t, IsForeignKeyErr(errors.New("Error 1452: Cannot add or update a child row")))
	assert.True(t, IsForeignKeyErr(errors.New("FOREIGN KEY constraint failed")))
}
