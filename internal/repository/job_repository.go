package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

const (
	JobStatusDraft  = "draft"
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

func ValidJobStatus(s string) bool {
	return s == JobStatusDraft || s == JobStatusOpen || s == JobStatusClosed
}

var employmentTypes = map[string]bool{
	"full-time":  true,
	"part-time":  true,
	"contract":   true,
	"internship": true,
}

func ValidEmploymentType(s string) bool {
	return employmentTypes[s]
}

type Job struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Location       string
	EmploymentType string
	Budget         float64
	Skills         []string
	ClientID       uuid.UUID
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type JobStatusCounts struct {
	Total  int
	Open   int
	Draft  int
	Closed int
}

// BrowseFilter narrows the open-job listing. Zero values mean "no filter".
type BrowseFilter struct {
	TitleSearch string
	Skills      []string
	Locations   []string
	MinBudget   *float64
	MaxBudget   *float64
	Limit       int
	Offset      int
}

type JobRepository interface {
	Create(ctx context.Context, j Job) error
	GetForClient(ctx context.Context, jobID, clientID uuid.UUID) (Job, error)
	GetOpenByID(ctx context.Context, jobID uuid.UUID) (Job, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]Job, error)
	Update(ctx context.Context, j Job) error
	DeleteForClient(ctx context.Context, jobID, clientID uuid.UUID) error
	CountsByClient(ctx context.Context, clientID uuid.UUID) (JobStatusCounts, error)
	TitleByID(ctx context.Context, jobID uuid.UUID) (string, error)
	BrowseOpen(ctx context.Context, f BrowseFilter) ([]Job, int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, description, location, employment_type, budget, skills, client_id, status, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, description, location, employment_type, budget, skills, client_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		j.ID, j.Title, j.Description, j.Location, j.EmploymentType, j.Budget, j.Skills, j.ClientID, j.Status,
	)
	return err
}

func (r *PostgresJobRepository) GetForClient(ctx context.Context, jobID, clientID uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND client_id = $2`,
		jobID, clientID,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) GetOpenByID(ctx context.Context, jobID uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND status = 'open'`,
		jobID,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE client_id = $1 ORDER BY created_at DESC`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j Job) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET title = $3, description = $4, location = $5, employment_type = $6,
		     budget = $7, skills = $8, status = $9, updated_at = now()
		 WHERE id = $1 AND client_id = $2`,
		j.ID, j.ClientID, j.Title, j.Description, j.Location, j.EmploymentType, j.Budget, j.Skills, j.Status,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) DeleteForClient(ctx context.Context, jobID, clientID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND client_id = $2`, jobID, clientID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) CountsByClient(ctx context.Context, clientID uuid.UUID) (JobStatusCounts, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'open'),
		        COUNT(*) FILTER (WHERE status = 'draft'),
		        COUNT(*) FILTER (WHERE status = 'closed')
		 FROM jobs WHERE client_id = $1`,
		clientID,
	)
	var c JobStatusCounts
	if err := row.Scan(&c.Total, &c.Open, &c.Draft, &c.Closed); err != nil {
		return JobStatusCounts{}, err
	}
	return c, nil
}

func (r *PostgresJobRepository) TitleByID(ctx context.Context, jobID uuid.UUID) (string, error) {
	var title string
	row := r.db.QueryRow(ctx, `SELECT title FROM jobs WHERE id = $1`, jobID)
	if err := row.Scan(&title); err != nil {
		if isNoRows(err) {
			return "", ErrJobNotFound
		}
		return "", err
	}
	return title, nil
}

func (r *PostgresJobRepository) BrowseOpen(ctx context.Context, f BrowseFilter) ([]Job, int, error) {
	conds := []string{`status = 'open'`}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.TitleSearch); s != "" {
		conds = append(conds, `title ILIKE `+arg("%"+s+"%"))
	}
	if len(f.Skills) > 0 {
		// match-any: the job's skill set must intersect the requested set
		conds = append(conds, `skills && `+arg(f.Skills))
	}
	if len(f.Locations) > 0 {
		conds = append(conds, `location = ANY(`+arg(f.Locations)+`)`)
	}
	if f.MinBudget != nil {
		conds = append(conds, `budget >= `+arg(*f.MinBudget))
	}
	if f.MaxBudget != nil {
		conds = append(conds, `budget <= `+arg(*f.MaxBudget))
	}

	where := strings.Join(conds, " AND ")

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE `+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func scanJob(row database.Row) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Location, &j.EmploymentType,
		&j.Budget, &j.Skills, &j.ClientID, &j.Status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func collectJobs(rows database.Rows) ([]Job, error) {
	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		err := rows.Scan(
			&j.ID, &j.Title, &j.Description, &j.Location, &j.EmploymentType,
			&j.Budget, &j.Skills, &j.ClientID, &j.Status, &j.CreatedAt, &j.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
