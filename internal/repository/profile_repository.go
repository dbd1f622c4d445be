package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"devconnect/internal/database"
	"devconnect/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Profiles keep social links and the experience/education lists as jsonb
// documents on the profile row, so every mutation is a single atomic row write.
type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `p.id, p.user_id, p.handle, p.company, p.website, p.location,
	p.bio, p.status, p.github_username, p.skills, p.social, p.experience, p.education,
	p.created_at, p.updated_at, u.name, u.avatar_url`

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	social, experience, education, err := marshalDocs(p)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles
			(id, user_id, handle, company, website, location, bio, status,
			 github_username, skills, social, experience, education, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`,
		p.ID, p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status,
		p.GithubUsername, nonNilSkills(p.Skills), social, experience, education,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrDuplicateHandle
		}
		return err
	}
	return nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	social, experience, education, err := marshalDocs(p)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET
			handle = $2, company = $3, website = $4, location = $5, bio = $6,
			status = $7, github_username = $8, skills = $9, social = $10,
			experience = $11, education = $12, updated_at = now()
		 WHERE user_id = $1`,
		p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio,
		p.Status, p.GithubUsername, nonNilSkills(p.Skills), social, experience, education,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrDuplicateHandle
		}
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1`,
		userID,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetByHandle(ctx context.Context, handle string) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p JOIN users u ON u.id = p.user_id
		 WHERE p.handle = $1`,
		handle,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) ListAll(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) DeleteWithOwner(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func nonNilSkills(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

func marshalDocs(p profile.Profile) (social, experience, education []byte, err error) {
	if social, err = json.Marshal(p.Social); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal social: %w", err)
	}
	if p.Experience == nil {
		p.Experience = []profile.Experience{}
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal experience: %w", err)
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal education: %w", err)
	}
	return social, experience, education, nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var (
		p          profile.Profile
		social     []byte
		experience []byte
		education  []byte
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Handle, &p.Company, &p.Website, &p.Location,
		&p.Bio, &p.Status, &p.GithubUsername, &p.Skills, &social, &experience, &education,
		&p.CreatedAt, &p.UpdatedAt, &p.User.Name, &p.User.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}

	if err := json.Unmarshal(social, &p.Social); err != nil {
		return profile.Profile{}, fmt.Errorf("unmarshal social: %w", err)
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return profile.Profile{}, fmt.Errorf("unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return profile.Profile{}, fmt.Errorf("unmarshal education: %w", err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}
