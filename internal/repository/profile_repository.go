package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

type PortfolioItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
}

type CertificateItem struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Issuer string     `json:"issuer,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
}

type ExperienceItem struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsCurrent   bool       `json:"isCurrent"`
	Description string     `json:"description,omitempty"`
}

type Profile struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Description       string
	Qualifications    []string
	Skills            []string
	YearsOfExperience int
	HourlyRate        float64
	Location          string
	Portfolio         []PortfolioItem
	Certificates      []CertificateItem
	Experience        []ExperienceItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProfileSearchFilter matches freelancer profiles joined to their identity.
type ProfileSearchFilter struct {
	NameSearch string
	Skills     []string
	Limit      int
	Offset     int
}

// ProfileWithIdentity is a search row; identity fields come from the joined
// users record, so unresolvable identities never appear.
type ProfileWithIdentity struct {
	Profile
	Name  string
	Email string
	Role  string
}

type ProfileRepository interface {
	Create(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	Update(ctx context.Context, p Profile) error
	Search(ctx context.Context, f ProfileSearchFilter) ([]ProfileWithIdentity, int, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, description, qualifications, skills, years_of_experience,
	hourly_rate, location, portfolio, certificates, experience, created_at, updated_at`

func (r *PostgresProfileRepository) Create(ctx context.Context, p Profile) error {
	portfolio, certificates, experience, err := marshalNested(p)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO freelancer_profiles
		 (id, user_id, description, qualifications, skills, years_of_experience,
		  hourly_rate, location, portfolio, certificates, experience)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Description, p.Qualifications, p.Skills, p.YearsOfExperience,
		p.HourlyRate, p.Location, portfolio, certificates, experience,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM freelancer_profiles WHERE user_id = $1`,
		userID,
	)
	p, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p Profile) error {
	portfolio, certificates, experience, err := marshalNested(p)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE freelancer_profiles
		 SET description = $2, qualifications = $3, skills = $4, years_of_experience = $5,
		     hourly_rate = $6, location = $7, portfolio = $8, certificates = $9,
		     experience = $10, updated_at = now()
		 WHERE user_id = $1`,
		p.UserID, p.Description, p.Qualifications, p.Skills, p.YearsOfExperience,
		p.HourlyRate, p.Location, portfolio, certificates, experience,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) Search(ctx context.Context, f ProfileSearchFilter) ([]ProfileWithIdentity, int, error) {
	conds := []string{`u.role = 'freelancer'`}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.NameSearch); s != "" {
		conds = append(conds, `u.name ILIKE `+arg("%"+s+"%"))
	}
	if len(f.Skills) > 0 {
		patterns := make([]string, 0, len(f.Skills))
		for _, sk := range f.Skills {
			sk = strings.TrimSpace(sk)
			if sk == "" {
				continue
			}
			patterns = append(patterns, "%"+sk+"%")
		}
		if len(patterns) > 0 {
			conds = append(conds,
				`EXISTS (SELECT 1 FROM unnest(p.skills) AS s WHERE s ILIKE ANY(`+arg(patterns)+`))`)
		}
	}

	where := strings.Join(conds, " AND ")
	from := ` FROM freelancer_profiles p JOIN users u ON u.id = p.user_id WHERE ` + where

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
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

	query := `SELECT p.id, p.user_id, p.description, p.qualifications, p.skills,
		p.years_of_experience, p.hourly_rate, p.location, p.portfolio, p.certificates,
		p.experience, p.created_at, p.updated_at, u.name, u.email, u.role` +
		from + ` ORDER BY p.created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ProfileWithIdentity, 0)
	for rows.Next() {
		var pw ProfileWithIdentity
		var portfolio, certificates, experience []byte
		err := rows.Scan(
			&pw.ID, &pw.UserID, &pw.Description, &pw.Qualifications, &pw.Skills,
			&pw.YearsOfExperience, &pw.HourlyRate, &pw.Location, &portfolio, &certificates,
			&experience, &pw.CreatedAt, &pw.UpdatedAt, &pw.Name, &pw.Email, &pw.Role,
		)
		if err != nil {
			return nil, 0, err
		}
		if err := unmarshalNested(&pw.Profile, portfolio, certificates, experience); err != nil {
			return nil, 0, err
		}
		out = append(out, pw)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanProfile(row database.Row) (Profile, error) {
	var p Profile
	var portfolio, certificates, experience []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Description, &p.Qualifications, &p.Skills,
		&p.YearsOfExperience, &p.HourlyRate, &p.Location,
		&portfolio, &certificates, &experience, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Profile{}, err
	}
	if err := unmarshalNested(&p, portfolio, certificates, experience); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func marshalNested(p Profile) (portfolio, certificates, experience []byte, err error) {
	if p.Portfolio == nil {
		p.Portfolio = []PortfolioItem{}
	}
	if p.Certificates == nil {
		p.Certificates = []CertificateItem{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceItem{}
	}

	if portfolio, err = json.Marshal(p.Portfolio); err != nil {
		return nil, nil, nil, err
	}
	if certificates, err = json.Marshal(p.Certificates); err != nil {
		return nil, nil, nil, err
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, err
	}
	return portfolio, certificates, experience, nil
}

func unmarshalNested(p *Profile, portfolio, certificates, experience []byte) error {
	if len(portfolio) > 0 {
		if err := json.Unmarshal(portfolio, &p.Portfolio); err != nil {
			return err
		}
	}
	if len(certificates) > 0 {
		if err := json.Unmarshal(certificates, &p.Certificates); err != nil {
			return err
		}
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &p.Experience); err != nil {
			return err
		}
	}
	return nil
}
