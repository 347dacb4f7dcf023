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

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/material"
)

type MaterialRepository struct {
	db *sqlx.DB
}

var _ material.Repository = (*MaterialRepository)(nil)

func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

type materialRow struct {
	ID               string         `db:"id"`
	Title            string         `db:"title"`
	Description      string         `db:"description"`
	CourseCode       string         `db:"course_code"`
	Type             string         `db:"type"`
	Category         string         `db:"category"`
	OriginalFileName string         `db:"original_file_name"`
	FileName         string         `db:"file_name"`
	FilePath         string         `db:"file_path"`
	FileSize         int64          `db:"file_size"`
	ContentType      string         `db:"content_type"`
	UploadedBy       string         `db:"uploaded_by"`
	Downloads        int            `db:"downloads"`
	Rating           float64        `db:"rating"`
	Tags             pq.StringArray `db:"tags"`
	IsPublic         bool           `db:"is_public"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (row materialRow) material() material.Material {
	return material.Material{
		ID:               row.ID,
		Title:            row.Title,
		Description:      row.Description,
		CourseCode:       row.CourseCode,
		Type:             row.Type,
		Category:         row.Category,
		OriginalFileName: row.OriginalFileName,
		FileName:         row.FileName,
		FilePath:         row.FilePath,
		FileSize:         row.FileSize,
		ContentType:      row.ContentType,
		UploadedBy:       row.UploadedBy,
		Downloads:        row.Downloads,
		Rating:           row.Rating,
		Tags:             row.Tags,
		IsPublic:         row.IsPublic,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}

func (repo *MaterialRepository) CreateMaterial(ctx context.Context, mat material.Material) (material.Material, error) {
	mat.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO material (id, title, description, course_code, type, category, original_file_name,
		                       file_name, file_path, file_size, content_type, uploaded_by, downloads,
		                       rating, tags, is_public, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		mat.ID, mat.Title, mat.Description, mat.CourseCode, mat.Type, mat.Category, mat.OriginalFileName,
		mat.FileName, mat.FilePath, mat.FileSize, mat.ContentType, mat.UploadedBy, mat.Downloads,
		mat.Rating, pq.StringArray(mat.Tags), mat.IsPublic, mat.CreatedAt, mat.UpdatedAt,
	)
	if err != nil {
		return material.Material{}, errors.Wrap(err, "inserting material")
	}
	return mat, nil
}

func (repo *MaterialRepository) GetMaterial(ctx context.Context, id string) (material.Material, error) {
	if _, err := uuid.Parse(id); err != nil {
		return material.Material{}, material.ErrNotFound
	}
	var row materialRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM material WHERE id = $1`, id)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return material.Material{}, material.ErrNotFound
		}
		return material.Material{}, errors.Wrap(err, "getting material")
	}
	return row.material(), nil
}

func (repo *MaterialRepository) QueryMaterials(ctx context.Context, filter *material.QueryFilter, ordering []core.DBOrdering) ([]material.Material, error) {
	query := `SELECT * FROM material`
	var args []interface{}

	if filter != nil {
		var where []string
		if filter.CourseCode != "" {
			args = append(args, filter.CourseCode)
			where = append(where, "course_code = "+placeholder(len(args)))
		}
		if filter.Type != "" {
			args = append(args, filter.Type)
			where = append(where, "type = "+placeholder(len(args)))
		}
		if filter.Category != "" {
			args = append(args, filter.Category)
			where = append(where, "category = "+placeholder(len(args)))
		}
		if filter.UploadedBy != "" {
			args = append(args, filter.UploadedBy)
			where = append(where, "uploaded_by::text = "+placeholder(len(args)))
		}
		if filter.PublicOnly {
			where = append(where, "is_public")
		}
		if len(where) > 0 {
			query += " WHERE " + strings.Join(where, " AND ")
		}
	}
	query += orderBy(ordering, "created_at DESC")

	var rows []materialRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying materials")
	}
	materials := make([]material.Material, 0, len(rows))
	for _, row := range rows {
		materials = append(materials, row.material())
	}
	return materials, nil
}

func (repo *MaterialRepository) IncrementDownloads(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `UPDATE material SET downloads = downloads + 1 WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "incrementing downloads")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return material.ErrNotFound
	}
	return nil
}

func (repo *MaterialRepository) DeleteMaterial(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM material WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting material")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return material.ErrNotFound
	}
	return nil
}
