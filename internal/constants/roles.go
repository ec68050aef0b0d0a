package constants

// OperatorRole is carried in operator tokens.
type OperatorRole string

const (
	RoleViewer   OperatorRole = "viewer"
	RoleOperator OperatorRole = "operator"
)

// String implements fmt.Stringer.
func (r OperatorRole) String() string { return string(r) }

// CanMutate reports whether the role may change fleet records.
func (r OperatorRole) CanMutate() bool { return r == RoleOperator }
