// Package models holds the gorm-mapped tables.
package models

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{&User{}, &ServiceArea{}, &QuoteRequest{}}
}
