package core

import (
	"strings"
	"time"
)

// Role is the closed set of permission classes a user can hold. Values are
// stable reference-table ids; the zero value is not a valid role.
type Role int

const (
	RoleUsers Role = iota + 1
	RoleCreators
	RoleAdmin
)

// roleNames maps roles to the names embedded in tokens and stored in the
// role reference table.
var roleNames = map[Role]string{
	RoleUsers:    "Users",
	RoleCreators: "Creators",
	RoleAdmin:    "Admin",
}

// RoleUsersName is the baseline role assigned to auto-provisioned users.
const RoleUsersName = "Users"

// String returns the reference name of the role, or "" for unknown values.
func (r Role) String() string {
	return roleNames[r]
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// RoleByName resolves a role reference name. The comparison is exact: role
// names are a closed server-side set, never user input.
func RoleByName(name string) (Role, bool) {
	for r, n := range roleNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

// AllowList is an endpoint's declared set of acceptable roles.
type AllowList []Role

// Contains reports whether role is in the allow-list.
func (a AllowList) Contains(role Role) bool {
	for _, r := range a {
		if r == role {
			return true
		}
	}
	return false
}

// AddressStatus is the lifecycle state of a wallet address record.
type AddressStatus string

const (
	AddressStatusActive AddressStatus = "active"
)

// Address is a wallet address record, created lazily on first successful
// login. The Address field is lowercase-normalized and unique.
type Address struct {
	ID        string
	Address   string
	Status    AddressStatus
	CreatedAt time.Time
}

// User is the account record tied 1:1 to an Address.
type User struct {
	ID          string
	AddressID   string
	Role        Role
	Username    string
	DisplayName string
	CreatedAt   time.Time
}

// Identity is the resolved authentication context embedded in tokens and
// attached to authorized requests. Authorization decisions read only from
// this struct, never from a store.
type Identity struct {
	UserID    string `json:"userId"`
	AddressID string `json:"addressId"`
	Wallet    string `json:"addressWallet"`
	Role      Role   `json:"-"`
	RoleName  string `json:"role"`
}

// NormalizeAddress lowercases a wallet address for storage and lookup.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
