package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/user"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type UserRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           string      `db:"id"`
	Name         string      `db:"name"`
	Email        string      `db:"email"`
	MatricNumber null.String `db:"matric_number"`
	Department   string      `db:"department"`
	Role         string      `db:"role"`
	IsActive     bool        `db:"is_active"`
	PasswordHash []byte      `db:"password_hash"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
	LastLogin    null.Time   `db:"last_login"`
}

func (row userRow) user() user.User {
	return user.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		MatricNumber: row.MatricNumber,
		Department:   row.Department,
		Role:         row.Role,
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
		LastLogin:    utcNullTime(row.LastLogin),
	}
}

func (repo *UserRepository) CheckUniqueness(ctx context.Context, email, matricNumber string, excludedUsers ...user.User) error {
	exclIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		exclIDs = append(exclIDs, usr.ID)
	}

	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT count(*) FROM portal_user WHERE lower(email) = lower($1) AND id::text != ALL($2)`,
		email, pq.Array(exclIDs),
	)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}

	if matricNumber == "" {
		return nil
	}
	err = repo.db.GetContext(ctx, &count,
		`SELECT count(*) FROM portal_user WHERE matric_number = $1 AND id::text != ALL($2)`,
		matricNumber, pq.Array(exclIDs),
	)
	if err != nil {
		return errors.Wrap(err, "checking matric number uniqueness")
	}
	if count > 0 {
		return user.ErrMatricExists
	}
	return nil
}

func (repo *UserRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO portal_user (id, name, email, matric_number, department, role, is_active, password_hash, created_at, updated_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		usr.ID, usr.Name, usr.Email, usr.MatricNumber, usr.Department, usr.Role,
		usr.IsActive, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(userDuplicateErr(err), "inserting user")
	}
	return usr, nil
}

func (repo *UserRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var (
		where string
		arg   interface{}
	)
	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return user.User{}, user.ErrNotFound
		}
		where, arg = "id = $1", filter.ID
	case filter.Email != "":
		where, arg = "lower(email) = lower($1)", filter.Email
	case filter.MatricNumber != "":
		where, arg = "matric_number = $1", filter.MatricNumber
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM portal_user WHERE `+where, arg)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.user(), nil
}

func (repo *UserRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering) ([]user.User, error) {
	query := `SELECT * FROM portal_user`
	var args []interface{}

	if filter != nil && !filter.IsEmpty() {
		var where []string
		if filter.Search != "" {
			args = append(args, "%"+filter.Search+"%")
			n := placeholder(len(args))
			where = append(where, "(name ILIKE "+n+" OR email ILIKE "+n+" OR matric_number ILIKE "+n+")")
		}
		if filter.Role != "" {
			args = append(args, filter.Role)
			where = append(where, "role = "+placeholder(len(args)))
		}
		if filter.Department != "" {
			args = append(args, filter.Department)
			where = append(where, "department = "+placeholder(len(args)))
		}
		if filter.IsActive != nil {
			args = append(args, *filter.IsActive)
			where = append(where, "is_active = "+placeholder(len(args)))
		}
		if !filter.CreatedFrom.IsZero() {
			args = append(args, filter.CreatedFrom)
			where = append(where, "created_at >= "+placeholder(len(args)))
		}
		if !filter.CreatedTo.IsZero() {
			args = append(args, filter.CreatedTo)
			where = append(where, "created_at <= "+placeholder(len(args)))
		}
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += orderBy(ordering, "created_at DESC")

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.user())
	}
	return users, nil
}

func (repo *UserRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE portal_user
		 SET name = $1, matric_number = $2, department = $3, role = $4, is_active = $5,
		     password_hash = $6, last_login = $7, updated_at = $8
		 WHERE id = $9`,
		usr.Name, usr.MatricNumber, usr.Department, usr.Role, usr.IsActive,
		usr.PasswordHash, usr.LastLogin, usr.UpdatedAt, usr.ID,
	)
	if err != nil {
		return user.User{}, errors.Wrap(userDuplicateErr(err), "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

// userDuplicateErr maps the email and matric unique indexes to domain errors.
func userDuplicateErr(err error) error {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case "portal_user_email_uniq":
			return user.ErrEmailExists
		case "portal_user_matric_number_uniq":
			return user.ErrMatricExists
		}
	}
	return err
}
