package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aidar/blitz-entry/internal/domain"
	"github.com/aidar/blitz-entry/internal/repository"
)

// RosterRepository реализует repository.RosterRepository поверх JSON файла
type RosterRepository struct {
	path     string
	teamName string
}

// NewRosterRepository создает новый экземпляр RosterRepository
func NewRosterRepository(path, teamName string) *RosterRepository {
	return &RosterRepository{
		path:     path,
		teamName: teamName,
	}
}

// Load читает массив участников из файла
func (r *RosterRepository) Load(ctx context.Context) (*domain.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	var records []repository.MemberRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode roster file %s: %w", r.path, err)
	}

	team, err := repository.BuildTeam(r.teamName, records)
	if err != nil {
		return nil, fmt.Errorf("invalid roster file %s: %w", r.path, err)
	}

	return team, nil
}
