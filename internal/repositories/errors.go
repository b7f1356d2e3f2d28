package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors surfaced by the repositories. Callers match them with
// errors.Is to tell integrity failures apart from storage faults.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when a user with the same username already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateISBN is returned when a book with the same ISBN already exists.
	ErrDuplicateISBN = errors.New("isbn already exists")

	// ErrUnknownAuthor is returned when a book references an author that does not exist.
	ErrUnknownAuthor = errors.New("author does not exist")

	// ErrUnknownUserType is returned when a user references a user type that does not exist.
	ErrUnknownUserType = errors.New("user type does not exist")
)

// MySQL error number for a unique or primary key violation
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL duplicate-key violation (Error 1062)
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
