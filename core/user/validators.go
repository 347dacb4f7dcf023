package user

import (
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/acuhub/portal/core"
)

var (
	portalRoleTag  = "portalrole"
	portalRoleText = "invalid role"

	matricRequiredTag  = "matricrequired"
	matricRequiredText = "matric number is required for students"

	pwdMaxSim      = .9
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to account attributes"
)

// InitValidators registers the account validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(portalRoleTag, portalRoleValidation)
	core.RegisterCustomTranslation(validate, translator, portalRoleTag, portalRoleText)

	validate.RegisterStructValidation(newUserStructValidation, NewUser{})
	core.RegisterCustomTranslation(validate, translator, matricRequiredTag, matricRequiredText)
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
}

// Custom Validators

// portalRoleValidation checks that the provided role is one of AllRoles.
func portalRoleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	sort.Strings(AllRoles)
	if idx := sort.SearchStrings(AllRoles, role); idx < len(AllRoles) {
		return AllRoles[idx] == role
	}
	return false
}

// newUserStructValidation does struct level validation on the NewUser struct.
func newUserStructValidation(sl validator.StructLevel) {
	nu, ok := sl.Current().Interface().(NewUser)
	if !ok {
		return
	}

	// students must provide a matric number
	if nu.Role == RoleStudent && nu.MatricNumber == "" {
		sl.ReportError(nu.MatricNumber, "matric_number", "MatricNumber", matricRequiredTag, "")
	}

	validatePassword(nu.Password, nu.Name, nu.Email, sl)
}

// validatePassword rejects passwords too similar to the account's own attributes.
// The length floor is enforced by the `min` tag on the field.
func validatePassword(pwd, name, email string, sl validator.StructLevel) {
	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(pass, ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	if getRatio(pwd, name) >= pwdMaxSim || getRatio(pwd, email) >= pwdMaxSim {
		sl.ReportError(pwd, "password", "Password", pwdAttrSimTag, "")
	}
}
