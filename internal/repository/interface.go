package repository

import (
	"context"

	"github.com/aidar/blitz-entry/internal/domain"
)

// RosterRepository определяет источник состава команды
type RosterRepository interface {
	// Load загружает команду со всеми участниками
	Load(ctx context.Context) (*domain.Team, error)
}

// MemberRecord представляет участника в том виде, в котором он хранится в источнике
type MemberRecord struct {
	FirstName                string `json:"firstName"`
	LastName                 string `json:"lastName"`
	Email                    string `json:"email"`
	PhoneNumber              string `json:"phoneNumber"`
	EducationalEstablishment string `json:"educationalEstablishment"`
	StudyProgram             string `json:"studyProgram"`
	DateProgramEnd           string `json:"dateProgramEnd"` // dd/mm/yyyy
	InCharge                 bool   `json:"inCharge"`
}

// ToDomain валидирует запись и преобразует ее в domain.TeamMember
func (r MemberRecord) ToDomain() (*domain.TeamMember, error) {
	end, err := domain.ParseProgramEnd(r.DateProgramEnd)
	if err != nil {
		return nil, err
	}

	return domain.NewTeamMember(
		r.FirstName,
		r.LastName,
		r.Email,
		r.PhoneNumber,
		r.EducationalEstablishment,
		r.StudyProgram,
		end,
		r.InCharge,
	)
}

// BuildTeam собирает команду из записей, останавливаясь на первой невалидной
func BuildTeam(teamName string, records []MemberRecord) (*domain.Team, error) {
	members := make([]domain.TeamMember, 0, len(records))
	for i, record := range records {
		member, err := record.ToDomain()
		if err != nil {
			return nil, &MemberError{Index: i, Err: err}
		}
		members = append(members, *member)
	}

	return domain.NewTeam(teamName, members...)
}
