package main

import (
	"context"
	"fmt"
	"time"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/user"
)

// addUser updates or creates an account.
func (cli *commandLine) addUser(name, email, pwd, role, department, matric string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	role = core.CleanString(role, true /* lower */)
	department = core.CleanString(department)
	matric = core.CleanString(matric)

	var validRole bool
	for _, r := range user.AllRoles {
		if role == r {
			validRole = true
			break
		}
	}
	if !validRole {
		return fmt.Errorf("invalid role %q", role)
	}
	if role == user.RoleStudent && matric == "" {
		return fmt.Errorf("matric number is required for students")
	}

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email})
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			CreatedAt: now,
		}
	}
	usr.Name = name
	usr.Role = role
	usr.Department = department
	usr.MatricNumber.SetValid(matric)
	if matric == "" {
		usr.MatricNumber.Valid = false
	}
	usr.IsActive = true
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
