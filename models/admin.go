package models

// RoleAdmin is the only role the storefront knows; shoppers are anonymous.
const RoleAdmin = "admin"

// Admin holds the single configured admin account.
type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
