package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/blitz-entry/internal/domain"
	"github.com/aidar/blitz-entry/internal/repository"
)

// RosterRepository реализует repository.RosterRepository для PostgreSQL
type RosterRepository struct {
	db       *pgxpool.Pool
	teamName string
}

// NewRosterRepository создает новый экземпляр RosterRepository
func NewRosterRepository(db *pgxpool.Pool, teamName string) *RosterRepository {
	return &RosterRepository{
		db:       db,
		teamName: teamName,
	}
}

// Load получает участников команды в порядке position
func (r *RosterRepository) Load(ctx context.Context) (*domain.Team, error) {
	query := `
		SELECT first_name, last_name, email, phone_number,
		       educational_establishment, study_program,
		       to_char(date_program_end, 'DD/MM/YYYY'), in_charge
		FROM team_members
		WHERE team_name = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, r.teamName)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var records []repository.MemberRecord
	for rows.Next() {
		var rec repository.MemberRecord
		if err := rows.Scan(
			&rec.FirstName,
			&rec.LastName,
			&rec.Email,
			&rec.PhoneNumber,
			&rec.EducationalEstablishment,
			&rec.StudyProgram,
			&rec.DateProgramEnd,
			&rec.InCharge,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	team, err := repository.BuildTeam(r.teamName, records)
	if err != nil {
		return nil, fmt.Errorf("invalid roster in database: %w", err)
	}

	return team, nil
}
