// Package access decides whether a principal may run a bot operation. It is
// a pure mapping with no I/O.
package access

import (
	"fmt"
	"slices"
)

// Operation is a user-facing bot command.
type Operation string

const (
	OpHelp    Operation = "help"
	OpUpload  Operation = "upload"
	OpPublish Operation = "publish"
	OpStatus  Operation = "status"
	OpPlace   Operation = "place"
	OpCleanup Operation = "cleanup"
)

// Role is a role held by a principal within the guild.
type Role struct {
	ID   string
	Name string
}

// Principal is the caller of an operation.
type Principal struct {
	ID      string
	Roles   []Role
	InGuild bool
	Admin   bool
}

// Policy names the role that unlocks the bot. When RoleID is set it is the
// only thing checked; RoleName is used only when RoleID is empty.
type Policy struct {
	RoleID   string
	RoleName string
}

// Decision is the result of Check. Reason is empty when Allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Check maps (principal, operation) to a decision. Direct messages are
// always refused. Cleanup needs administrator rights and ignores the role
// policy; every other operation needs the policy role.
func (p Policy) Check(who Principal, op Operation) Decision {
	if !who.InGuild {
		return deny("commands are only available inside a server")
	}
	if op == OpCleanup {
		if who.Admin {
			return allow()
		}
		return deny("administrator permissions are required for %s", op)
	}
	if p.holds(who) {
		return allow()
	}
	return deny("the %s role is required to use this bot", p.Required())
}

func (p Policy) holds(who Principal) bool {
	if p.RoleID != "" {
		return slices.ContainsFunc(who.Roles, func(r Role) bool { return r.ID == p.RoleID })
	}
	if p.RoleName != "" {
		return slices.ContainsFunc(who.Roles, func(r Role) bool { return r.Name == p.RoleName })
	}
	return false
}

// Required is the display form of the required role.
func (p Policy) Required() string {
	if p.RoleID != "" {
		return "role id " + p.RoleID
	}
	return p.RoleName
}
