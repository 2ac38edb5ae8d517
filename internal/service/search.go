package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aidar/blitz-entry/internal/domain"
)

// MatchParagraphs возвращает индексы абзацев, содержащих query без учета регистра.
// Результат отсортирован по возрастанию; пустой query совпадает с любым абзацем.
func MatchParagraphs(query string, paragraphs map[string]string) ([]int, error) {
	// cases.Caser хранит состояние, поэтому создается на каждый вызов.
	// Только нижний регистр, без folding: "ss" не совпадает с "ß".
	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	matched := make([]int, 0, len(paragraphs))
	for key, paragraph := range paragraphs {
		index, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidParagraphKey, key)
		}
		if strings.Contains(lower.String(paragraph), needle) {
			matched = append(matched, index)
		}
	}

	sort.Ints(matched)
	return matched, nil
}
