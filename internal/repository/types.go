package repository

import "gorm.io/gorm"

// Scope is a composable query predicate. Role-based visibility rules are
// expressed as scopes assembled by the service layer and applied to a base
// query, never as string-built WHERE clauses.
type Scope func(*gorm.DB) *gorm.DB

// ScopeStore restricts to one store.
func ScopeStore(storeID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("store_id = ?", storeID)
	}
}

// ScopeStatus restricts to one exact status.
func ScopeStatus(status string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// ScopeExcludeStatus filters a status out.
func ScopeExcludeStatus(status string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status <> ?", status)
	}
}

// ScopeNone matches everything.
func ScopeNone() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db
	}
}

func applyScopes(db *gorm.DB, scopes []Scope) *gorm.DB {
	for _, s := range scopes {
		db = s(db)
	}
	return db
}
