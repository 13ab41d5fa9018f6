package repository

import (
	"context"
	"errors"
	"time"

	"gigboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

func ValidApplicationStatus(s string) bool {
	return s == ApplicationStatusPending || s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

type Application struct {
	ID              uuid.UUID
	JobID           uuid.UUID
	ApplicantID     uuid.UUID
	Status          string
	CoverLetter     string
	AppliedAt       time.Time
	IsMessaged      bool
	MessageThreadID *uuid.UUID
}

// ApplicationDetail carries the joined applicant and job fields the review
// endpoints shape into responses.
type ApplicationDetail struct {
	Application
	ApplicantName  string
	ApplicantEmail string
	ProfileID      *uuid.UUID
	JobTitle       string
	JobClientID    uuid.UUID
}

type ApplicationCounts struct {
	Total    int
	Pending  int
	Accepted int
	Rejected int
}

type ApplicationRepository interface {
	Create(ctx context.Context, a Application) error
	ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	GetDetail(ctx context.Context, id uuid.UUID) (ApplicationDetail, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]ApplicationDetail, error)
	ListByJobOwner(ctx context.Context, clientID uuid.UUID) ([]ApplicationDetail, error)
	ListByApplicants(ctx context.Context, applicantIDs []uuid.UUID) ([]ApplicationDetail, error)
	JobIDsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]uuid.UUID, error)
	CountsByApplicant(ctx context.Context, applicantID uuid.UUID) (ApplicationCounts, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, status, cover_letter, is_messaged, message_thread_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.JobID, a.ApplicantID, a.Status, a.CoverLetter, a.IsMessaged, a.MessageThreadID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) ExistsForJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

const applicationDetailQuery = `
SELECT a.id, a.job_id, a.applicant_id, a.status, a.cover_letter, a.applied_at,
       a.is_messaged, a.message_thread_id,
       u.name, u.email, p.id,
       j.title, j.client_id
FROM applications a
JOIN users u ON u.id = a.applicant_id
JOIN jobs j ON j.id = a.job_id
LEFT JOIN freelancer_profiles p ON p.user_id = a.applicant_id`

func (r *PostgresApplicationRepository) GetDetail(ctx context.Context, id uuid.UUID) (ApplicationDetail, error) {
	row := r.db.QueryRow(ctx, applicationDetailQuery+` WHERE a.id = $1`, id)
	d, err := scanApplicationDetail(row)
	if err != nil {
		if isNoRows(err) {
			return ApplicationDetail{}, ErrApplicationNotFound
		}
		return ApplicationDetail{}, err
	}
	return d, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]ApplicationDetail, error) {
	rows, err := r.db.Query(ctx,
		applicationDetailQuery+` WHERE a.job_id = $1 ORDER BY a.applied_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplicationDetails(rows)
}

func (r *PostgresApplicationRepository) ListByJobOwner(ctx context.Context, clientID uuid.UUID) ([]ApplicationDetail, error) {
	rows, err := r.db.Query(ctx,
		applicationDetailQuery+` WHERE j.client_id = $1 ORDER BY a.applied_at DESC`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplicationDetails(rows)
}

func (r *PostgresApplicationRepository) ListByApplicants(ctx context.Context, applicantIDs []uuid.UUID) ([]ApplicationDetail, error) {
	if len(applicantIDs) == 0 {
		return []ApplicationDetail{}, nil
	}
	rows, err := r.db.Query(ctx,
		applicationDetailQuery+` WHERE a.applicant_id = ANY($1) ORDER BY a.applied_at DESC`,
		applicantIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplicationDetails(rows)
}

func (r *PostgresApplicationRepository) JobIDsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id FROM applications WHERE applicant_id = $1`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PostgresApplicationRepository) CountsByApplicant(ctx context.Context, applicantID uuid.UUID) (ApplicationCounts, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'pending'),
		        COUNT(*) FILTER (WHERE status = 'accepted'),
		        COUNT(*) FILTER (WHERE status = 'rejected')
		 FROM applications WHERE applicant_id = $1`,
		applicantID,
	)
	var c ApplicationCounts
	if err := row.Scan(&c.Total, &c.Pending, &c.Accepted, &c.Rejected); err != nil {
		return ApplicationCounts{}, err
	}
	return c, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func scanApplicationDetail(row database.Row) (ApplicationDetail, error) {
	var d ApplicationDetail
	err := row.Scan(
		&d.ID, &d.JobID, &d.ApplicantID, &d.Status, &d.CoverLetter, &d.AppliedAt,
		&d.IsMessaged, &d.MessageThreadID,
		&d.ApplicantName, &d.ApplicantEmail, &d.ProfileID,
		&d.JobTitle, &d.JobClientID,
	)
	if err != nil {
		return ApplicationDetail{}, err
	}
	return d, nil
}

func collectApplicationDetails(rows database.Rows) ([]ApplicationDetail, error) {
	out := make([]ApplicationDetail, 0)
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
