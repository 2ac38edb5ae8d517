package domain

// SearchRequest тело запроса на поиск строки в абзацах
type SearchRequest struct {
	Q          *string           `json:"q"`
	Paragraphs map[string]string `json:"paragraphs"`
}

// Entry ответ сервиса: состав команды и индексы найденных абзацев.
// Собирается заново на каждый запрос.
type Entry struct {
	TeamName          string       `json:"teamName"`
	TeamMembers       []TeamMember `json:"teamMembers"`
	MatchedParagraphs []int        `json:"matchedParagraphs"`
}
