package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a unique index violation. The
// connection is opened with TranslateError so the MySQL driver error arrives
// as gorm.ErrDuplicatedKey.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
