package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/acuhub/portal/core/user"
	"github.com/acuhub/portal/storage/database/inmem"
)

var usrRepo *inmem.UserRepository

func setup(t *testing.T) *commandLine {
	usrRepo = inmem.NewUserRepository()
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cretpwd"), nil }

	return &commandLine{
		db:      &sqlx.DB{},
		usrRepo: usrRepo,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func (tt cliTest) check(t *testing.T, err error) bool {
	t.Helper()
	if err != nil {
		if tt.wantErr != nil {
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		} else if tt.wantErrStr != "" {
			if err.Error() != tt.wantErrStr {
				t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
			}
		} else {
			t.Errorf("cli.run() unexpected error = %v", err)
		}
		return false
	}
	if tt.wantErr != nil || tt.wantErrStr != "" {
		t.Errorf("cli.run() error = nil, want %v%s", tt.wantErr, tt.wantErrStr)
		return false
	}
	return true
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "material", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing name", args: []string{"adduser", "-email", "root@acu.edu.ng"}, wantErr: errHelp},
		{name: "invalid role", args: []string{"adduser", "-email", "root@acu.edu.ng", "-name", "Root", "-role", "rector"}, wantErrStr: "invalid role \"rector\""},
		{name: "student without matric", args: []string{"adduser", "-email", "ada@acu.edu.ng", "-name", "Ada", "-role", "student"}, wantErrStr: "matric number is required for students"},
		{name: "default admin", args: []string{"adduser", "-email", "root@acu.edu.ng", "-name", "Root"}},
		{name: "student", args: []string{"adduser", "-email", "ada@acu.edu.ng", "-name", "Ada Obi", "-role", "student", "-department", "Computer Science", "-matric", "ACU2021001"}},
		{name: "existing account is updated", args: []string{"adduser", "-email", "root@acu.edu.ng", "-name", "Super Root"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(t, cli.run(args)) {
				return
			}
		})
	}

	// default admin was created then renamed in place
	root, err := usrRepo.GetUser(ctx, user.GetFilter{Email: "root@acu.edu.ng"})
	if err != nil {
		t.Fatalf("GetUser() unexpected error = %v", err)
	}
	if root.Name != "Super Root" || root.Role != user.RoleAdmin || root.Department != "Administration" {
		t.Errorf("root account = %+v", root)
	}
	if err = root.CheckPassword("s3cretpwd"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}

	ada, err := usrRepo.GetUser(ctx, user.GetFilter{Email: "ada@acu.edu.ng"})
	if err != nil {
		t.Fatalf("GetUser() unexpected error = %v", err)
	}
	if ada.Role != user.RoleStudent || ada.MatricNumber.String != "ACU2021001" {
		t.Errorf("student account = %+v", ada)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	if err := cli.run([]string{"admin", "adduser", "-email", "root@acu.edu.ng", "-name", "Root"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("brandnewpwd"), nil }

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "unknown email", args: []string{"resetpassword", "-email", "ghost@acu.edu.ng"}, wantErr: user.ErrNotFound},
		{name: "ok", args: []string{"resetpassword", "-email", "root@acu.edu.ng"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	root, err := usrRepo.GetUser(ctx, user.GetFilter{Email: "root@acu.edu.ng"})
	if err != nil {
		t.Fatalf("GetUser() unexpected error = %v", err)
	}
	if err = root.CheckPassword("brandnewpwd"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
}

func Test_commandLine_setActive(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	if err := cli.run([]string{"admin", "adduser", "-email", "root@acu.edu.ng", "-name", "Root"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	isActive := func() bool {
		usr, err := usrRepo.GetUser(ctx, user.GetFilter{Email: "root@acu.edu.ng"})
		if err != nil {
			t.Fatalf("GetUser() unexpected error = %v", err)
		}
		return usr.IsActive
	}

	if err := cli.run([]string{"admin", "setactive", "-email", "root@acu.edu.ng", "-off"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	if isActive() {
		t.Error("account still active after setactive -off")
	}

	if err := cli.run([]string{"admin", "setactive", "-email", "root@acu.edu.ng"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	if !isActive() {
		t.Error("account still inactive after setactive")
	}

	if err := cli.run([]string{"admin", "setactive"}); err != errHelp {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
	}
}
