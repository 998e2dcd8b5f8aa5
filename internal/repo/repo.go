package repo

import (
	"gorm.io/gorm"
)

// GormRepo is the entity store shared by every service. Each collection
// (products, users, cart lines) gets its own file with the usual
// create / find-one / find-many / update operations.
type GormRepo struct {
	DB *gorm.DB
}
