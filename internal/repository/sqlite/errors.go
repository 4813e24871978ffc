package sqlite

import (
	"errors"
	"fmt"
	"strings"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/VinicciusWirz/social-postify/internal/repository"
)

// translate maps SQLite constraint failures onto the repository sentinels.
// The original driver error stays in the chain.
func translate(err error) error {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %w", repository.ErrUniqueViolation, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", repository.ErrForeignKeyViolation, err)
	}

	// Primary result code only (extended codes disabled): fall back to the message.
	if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return fmt.Errorf("%w: %w", repository.ErrForeignKeyViolation, err)
		case strings.Contains(msg, "UNIQUE"):
			return fmt.Errorf("%w: %w", repository.ErrUniqueViolation, err)
		}
	}

	return err
}
