package service

import (
	"context"

	"github.com/aidar/blitz-entry/internal/domain"
)

// EntryService собирает ответ на заявку: команду и найденные абзацы
type EntryService struct {
	team *domain.Team
}

// NewEntryService создает новый EntryService для загруженной команды
func NewEntryService(team *domain.Team) *EntryService {
	return &EntryService{
		team: team,
	}
}

// Team возвращает команду, с которой работает сервис
func (s *EntryService) Team() *domain.Team {
	return s.team
}

// Answer выполняет поиск и формирует ответ. Состояние между запросами не хранится.
func (s *EntryService) Answer(ctx context.Context, req *domain.SearchRequest) (*domain.Entry, error) {
	if req == nil || req.Q == nil {
		return nil, domain.ErrMissingQuery
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched, err := MatchParagraphs(*req.Q, req.Paragraphs)
	if err != nil {
		return nil, err
	}

	return &domain.Entry{
		TeamName:          s.team.TeamName,
		TeamMembers:       s.team.Members,
		MatchedParagraphs: matched,
	}, nil
}
