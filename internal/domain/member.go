package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// DateLayout формат даты окончания программы во входных данных.
// День и месяц из одной или двух цифр: "1/5/2020" и "01/05/2020".
const DateLayout = "2/1/2006"

var (
	// \w и \d в RE2 только ASCII, поэтому классы заданы через Unicode категории
	phonePattern = regexp.MustCompile(`^(1 )?\p{Nd}{3}-\p{Nd}{3}-\p{Nd}{4}( x\p{Nd}{1,5})?$`)
	emailPattern = regexp.MustCompile(`^([\p{L}\p{N}_]+(\.|\-)?)+(\p{Nd}+)?@[\p{L}\p{N}_]+\.[\p{L}\p{N}_]+$`)
)

// TeamMember представляет участника команды.
// Поля проверяются один раз в NewTeamMember и дальше не меняются.
type TeamMember struct {
	FirstName                string
	LastName                 string
	Email                    string
	PhoneNumber              string
	EducationalEstablishment string
	StudyProgram             string
	DateProgramEnd           time.Time
	InCharge                 bool
}

// NewTeamMember создает участника команды с проверкой телефона, email и даты
func NewTeamMember(
	firstName, lastName, email, phoneNumber, educationalEstablishment, studyProgram string,
	dateProgramEnd time.Time,
	inCharge bool,
) (*TeamMember, error) {
	if !ValidPhone(phoneNumber) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhone, phoneNumber)
	}
	if !ValidEmail(email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if dateProgramEnd.IsZero() {
		return nil, ErrInvalidDate
	}

	return &TeamMember{
		FirstName:                firstName,
		LastName:                 lastName,
		Email:                    email,
		PhoneNumber:              phoneNumber,
		EducationalEstablishment: educationalEstablishment,
		StudyProgram:             studyProgram,
		DateProgramEnd:           dateProgramEnd,
		InCharge:                 inCharge,
	}, nil
}

// ValidPhone проверяет формат номера телефона, например "1 418-555-0199 x42"
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidEmail проверяет формат email
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ParseProgramEnd разбирает дату в формате d/m/yyyy (UTC, полночь)
func ParseProgramEnd(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// teamMemberJSON сериализуемое представление участника.
// dateProgramEnd отдается как Unix timestamp в секундах от полуночи UTC, а не локального времени.
type teamMemberJSON struct {
	FirstName                string  `json:"firstName"`
	LastName                 string  `json:"lastName"`
	Email                    string  `json:"email"`
	PhoneNumber              string  `json:"phoneNumber"`
	EducationalEstablishment string  `json:"educationalEstablishment"`
	StudyProgram             string  `json:"studyProgram"`
	DateProgramEnd           float64 `json:"dateProgramEnd"`
	InCharge                 bool    `json:"inCharge"`
}

// MarshalJSON реализует json.Marshaler
func (m TeamMember) MarshalJSON() ([]byte, error) {
	return json.Marshal(teamMemberJSON{
		FirstName:                m.FirstName,
		LastName:                 m.LastName,
		Email:                    m.Email,
		PhoneNumber:              m.PhoneNumber,
		EducationalEstablishment: m.EducationalEstablishment,
		StudyProgram:             m.StudyProgram,
		DateProgramEnd:           float64(m.DateProgramEnd.Unix()),
		InCharge:                 m.InCharge,
	})
}
