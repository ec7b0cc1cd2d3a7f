package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.kz' for key 'users.email'"}
	if !isDuplicateEntry(dup) {
		t.Error("error 1062 not recognized as duplicate entry")
	}
	if !isDuplicateEntry(fmt.Errorf("insert user: %w", dup)) {
		t.Error("wrapped error 1062 not recognized")
	}
	if isDuplicateEntry(&mysql.MySQLError{Number: 1452}) {
		t.Error("foreign key error misread as duplicate entry")
	}
	if isDuplicateEntry(errors.New("connection refused")) {
		t.Error("plain error misread as duplicate entry")
	}
	if isDuplicateEntry(nil) {
		t.Error("nil misread as duplicate entry")
	}
}
