package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/acuhub/portal/core"
)

// Roles. An account holds exactly one, fixed at registration.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

var AllRoles = []string{RoleStudent, RoleLecturer, RoleAdmin}

type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	MatricNumber null.String `json:"matric_number,omitempty"`
	Department   string      `json:"department"`
	Role         string      `json:"role"`
	IsActive     bool        `json:"is_active"`
	PasswordHash []byte      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
	LastLogin    null.Time   `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword returns a non-nil error on any mismatch or malformed hash.
func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsStudent() bool  { return u.Role == RoleStudent }
func (u *User) IsLecturer() bool { return u.Role == RoleLecturer }
func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Department   string `json:"department" validate:"required"`
	Role         string `json:"role" validate:"required,portalrole"`
	MatricNumber string `json:"matric_number" validate:"omitempty,alphanum_"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Department = core.CleanString(nu.Department)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.MatricNumber = core.CleanString(nu.MatricNumber)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Email, nu.MatricNumber)
}

// UpdateUser defines what information may be provided to modify an existing User.
// IsActive may only be changed by an admin; this is enforced at the API.
type UpdateUser struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	IsActive   *bool  `json:"is_active"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	dept := core.CleanString(uu.Department)
	if dept != "" {
		uu.Department = dept
	} else {
		uu.Department = origUsr.Department
	}

	return validate.Struct(uu)
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return validate.Struct(c)
}

// GetFilter selects a single User; the first set field wins.
type GetFilter struct {
	ID           string
	Email        string
	MatricNumber string
}

type QueryFilter struct {
	Search      string    `query:"search"`
	Role        string    `query:"role"`
	Department  string    `query:"department"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == "" && qf.Department == "" &&
		qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
	qf.Department = core.CleanString(qf.Department)
}
