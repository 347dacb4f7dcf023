package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/acuhub/portal/core"
)

func newTestValidate(t *testing.T) (*validator.Validate, ut.Translator) {
	t.Helper()
	enLocale := en.New()
	uniTranslator := ut.New(enLocale, enLocale)
	translator, found := uniTranslator.GetTranslator(enLocale.Locale())
	if !found {
		t.Fatal("translator not found")
	}

	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate, translator
}

// fieldErrors translates validation errors into a field -> message map.
func fieldErrors(t *testing.T, err error, translator ut.Translator) map[string]string {
	t.Helper()
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("error = %T(%v), want validator.ValidationErrors", err, err)
	}
	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		fields[fe.Field()] = fe.Translate(translator)
	}
	return fields
}

func TestNewUser_Validate(t *testing.T) {
	validate, translator := newTestValidate(t)
	svc := newTestService(newFakeRepository())

	valid := NewUser{
		Name:         "Ada Obi",
		Email:        "ada@acu.edu.ng",
		Password:     "s3cretpwd",
		Department:   "Computer Science",
		Role:         RoleStudent,
		MatricNumber: "ACU2021001",
	}

	tests := []struct {
		name       string
		alter      func(nu *NewUser)
		wantFields map[string]string
	}{
		{name: "valid student", alter: func(nu *NewUser) {}},
		{
			name:  "lecturer needs no matric",
			alter: func(nu *NewUser) { nu.Role = RoleLecturer; nu.MatricNumber = "" },
		},
		{
			name:       "unknown role",
			alter:      func(nu *NewUser) { nu.Role = "rector" },
			wantFields: map[string]string{"role": "invalid role"},
		},
		{
			name:       "student without matric",
			alter:      func(nu *NewUser) { nu.MatricNumber = "" },
			wantFields: map[string]string{"matric_number": "matric number is required for students"},
		},
		{
			name:       "short password",
			alter:      func(nu *NewUser) { nu.Password = "abc" },
			wantFields: map[string]string{"password": "password must be at least 6 characters in length"},
		},
		{
			name:       "password same as email",
			alter:      func(nu *NewUser) { nu.Password = "ada@acu.edu.ng" },
			wantFields: map[string]string{"password": "password cannot be similar to account attributes"},
		},
		{
			name:       "password too similar to name",
			alter:      func(nu *NewUser) { nu.Password = "Ada Obi!" },
			wantFields: map[string]string{"password": "password cannot be similar to account attributes"},
		},
		{
			name:       "missing name",
			alter:      func(nu *NewUser) { nu.Name = "" },
			wantFields: map[string]string{"name": "this field is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := valid
			tt.alter(&nu)

			err := nu.Validate(validate, svc)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			fields := fieldErrors(t, err, translator)
			for field, want := range tt.wantFields {
				if got := fields[field]; got != want {
					t.Errorf("fields[%s] = %q, want %q", field, got, want)
				}
			}
		})
	}
}

func TestNewUser_Validate_cleans(t *testing.T) {
	validate, _ := newTestValidate(t)
	svc := newTestService(newFakeRepository())

	nu := NewUser{
		Name:         "  Ada Obi  ",
		Email:        " ADA@ACU.edu.ng ",
		Password:     "s3cretpwd",
		Department:   " Computer Science ",
		Role:         " Student ",
		MatricNumber: " ACU2021001 ",
	}
	if err := nu.Validate(validate, svc); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if nu.Name != "Ada Obi" || nu.Email != "ada@acu.edu.ng" || nu.Role != RoleStudent || nu.MatricNumber != "ACU2021001" {
		t.Errorf("Validate() did not clean fields: %+v", nu)
	}
}
