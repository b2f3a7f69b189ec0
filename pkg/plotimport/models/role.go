package models

// ColumnRole is the semantic meaning assigned to a table column.
type ColumnRole string

const (
	RolePlot    ColumnRole = "plot"
	RoleEmail   ColumnRole = "email"
	RoleName    ColumnRole = "name"
	RolePhone   ColumnRole = "phone"
	RoleUnknown ColumnRole = "unknown"
)

// PlotColumn is the fixed position of the plot identifier column.
const PlotColumn = 0

// NoColumn marks a role that has not been resolved.
const NoColumn = -1

// RoleAssignment maps each role to the column that plays it.
// Unresolved roles hold NoColumn.
type RoleAssignment struct {
	Plot  int `json:"plot"`
	Email int `json:"email"`
	Name  int `json:"name"`
	Phone int `json:"phone"`
}

// NewRoleAssignment returns an assignment with only the plot column set.
func NewRoleAssignment() RoleAssignment {
	return RoleAssignment{
		Plot:  PlotColumn,
		Email: NoColumn,
		Name:  NoColumn,
		Phone: NoColumn,
	}
}

// Column returns the column index for role, or NoColumn.
func (a RoleAssignment) Column(role ColumnRole) int {
	switch role {
	case RolePlot:
		return a.Plot
	case RoleEmail:
		return a.Email
	case RoleName:
		return a.Name
	case RolePhone:
		return a.Phone
	default:
		return NoColumn
	}
}

// Resolved reports whether role has a column.
func (a RoleAssignment) Resolved(role ColumnRole) bool {
	return a.Column(role) != NoColumn
}

// Set assigns role to col.
func (a *RoleAssignment) Set(role ColumnRole, col int) {
	switch role {
	case RolePlot:
		a.Plot = col
	case RoleEmail:
		a.Email = col
	case RoleName:
		a.Name = col
	case RolePhone:
		a.Phone = col
	}
}

// RolesOf returns every role assigned to col, in Plot, Email, Name, Phone
// order. The positional fallback may give one column two roles.
func (a RoleAssignment) RolesOf(col int) []ColumnRole {
	var roles []ColumnRole
	for _, role := range []ColumnRole{RolePlot, RoleEmail, RoleName, RolePhone} {
		if a.Column(role) == col {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		roles = append(roles, RoleUnknown)
	}
	return roles
}
