package domain

// Team представляет команду участников соревнования
type Team struct {
	TeamName string       `json:"teamName"`
	Members  []TeamMember `json:"teamMembers"`
}

// NewTeam создает команду. Уникальность участников не проверяется.
func NewTeam(teamName string, members ...TeamMember) (*Team, error) {
	if teamName == "" {
		return nil, ErrInvalidTeam
	}
	if members == nil {
		members = []TeamMember{}
	}
	return &Team{
		TeamName: teamName,
		Members:  members,
	}, nil
}

// InCharge возвращает ответственного за команду, если он есть
func (t *Team) InCharge() (*TeamMember, bool) {
	for i := range t.Members {
		if t.Members[i].InCharge {
			return &t.Members[i], true
		}
	}
	return nil, false
}
