package auth

import "github.com/Shamanth-8/drones/internal/constants"

// UserClaims is what handlers see of the caller.
type UserClaims interface {
	Subject() string
	Role() constants.OperatorRole
	Source() string
	TokenID() string
	CanMutate() bool
}

// OperatorClaims come from a verified operator token.
type OperatorClaims struct {
	SubjectValue string
	RoleValue    constants.OperatorRole
	TokenIDValue string
}

func (c *OperatorClaims) Subject() string              { return c.SubjectValue }
func (c *OperatorClaims) Role() constants.OperatorRole { return c.RoleValue }
func (c *OperatorClaims) Source() string               { return "JWT" }
func (c *OperatorClaims) TokenID() string              { return c.TokenIDValue }
func (c *OperatorClaims) CanMutate() bool              { return c.RoleValue.CanMutate() }

// LocalClaims are attached when operator auth is disabled, and by the CLI.
type LocalClaims struct {
	SourceValue constants.RequestSource
}

func (c *LocalClaims) Subject() string              { return "local" }
func (c *LocalClaims) Role() constants.OperatorRole { return constants.RoleOperator }
func (c *LocalClaims) Source() string               { return string(c.SourceValue) }
func (c *LocalClaims) TokenID() string              { return "" }
func (c *LocalClaims) CanMutate() bool              { return true }
