package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL ER_DUP_ENTRY, raised by the unique email indexes.
const duplicateEntryCode = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryCode
}
