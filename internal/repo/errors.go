package repo

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound and ErrDuplicateKey classify service errors. Service packages
// declare their own sentinels of these kinds with NotFoundError,
// DuplicateError and DuplicateIDError, so callers can match either the sentinel or the kind.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

type kindError struct {
	msg  string
	kind error
	hint string
}

func (e *kindError) Error() string        { return e.msg }
func (e *kindError) Is(target error) bool { return target == e.kind }

// NotFoundError returns a sentinel that matches ErrNotFound.
func NotFoundError(msg string) error { return &kindError{msg: msg, kind: ErrNotFound} }

// DuplicateError returns a sentinel that matches ErrDuplicateKey.
func DuplicateError(msg string) error { return &kindError{msg: msg, kind: ErrDuplicateKey} }

// DuplicateIDError is DuplicateError for a primary key the operator chose;
// its hint asks for another id.
func DuplicateIDError(msg string) error {
	return &kindError{msg: msg, kind: ErrDuplicateKey, hint: "Please use a unique ID."}
}

// Hint returns the operator hint carried by the first sentinel in err's
// chain, or "" when there is none.
func Hint(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.hint
	}
	return ""
}

const (
	pqUniqueViolation   = "23505"
	pqIntegrityClass    = "23"
	mysqlDuplicateEntry = 1062
)

// mysql integrity constraint error numbers.
var mysqlConstraintErrors = map[uint16]bool{
	1048: true, // column cannot be null
	1062: true, // duplicate entry
	1216: true, // child row: foreign key fails
	1217: true, // parent row: foreign key fails
	1451: true, // cannot delete parent row
	1452: true, // cannot add child row
}

// IsUniqueViolation reports whether err is a primary key or unique constraint
// violation from any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

// IsConstraintError reports whether err is any integrity constraint violation.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code.Class()) == pqIntegrityClass
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlConstraintErrors[myErr.Number]
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}

	return false
}
