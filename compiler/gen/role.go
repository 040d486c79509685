package gen

import "github.com/syssam/tsgen/schema"

// Role is the structural role a declaration plays: the full record, the
// shape accepted on insert, the partial shape accepted on update, or
// the shape returned by a read.
type Role uint8

// Roles, in declaration-emission order.
const (
	RoleFull Role = iota
	RoleInsertable
	RoleUpdateable
	RoleSelectable
)

var roleNames = [...]string{
	RoleFull:       "full",
	RoleInsertable: "insertable",
	RoleUpdateable: "updateable",
	RoleSelectable: "selectable",
}

// String returns the role name.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Optional reports whether the column is optional under this role.
// Optionality is a property of the role; nullability is a property of
// the data. Full and Selectable never mark fields optional, Insertable
// does when the database can supply the value itself, Updateable always
// does (partial update).
func (r Role) Optional(col schema.Column) bool {
	switch r {
	case RoleInsertable:
		return col.AutoGenerated || col.HasDefault()
	case RoleUpdateable:
		return true
	default:
		return false
	}
}

// Roles returns the roles an entity receives. Read-only views get the
// full and selectable declarations only.
func Roles(t schema.Table) []Role {
	if t.View {
		return []Role{RoleFull, RoleSelectable}
	}
	return []Role{RoleFull, RoleInsertable, RoleUpdateable, RoleSelectable}
}
