// Package repository holds the GORM-backed persistence layer.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// notFound translates gorm's missing-row error into the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
