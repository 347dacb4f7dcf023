package main

import (
	"context"
	"time"

	"github.com/acuhub/portal/core/user"
)

func (cli *commandLine) setActive(email string, active bool) error {
	ctx := context.Background()
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email})
	if err != nil {
		return err
	}
	usr.IsActive = active
	usr.UpdatedAt = time.Now().UTC()
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
