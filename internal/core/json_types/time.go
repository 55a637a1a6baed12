package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ClockTime - время суток в пределах одного дня
// В JSON сериализуется как "HH:MM", нулевое значение сериализуется как null
type ClockTime struct {
	Time time.Time
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Time: time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)}
}

// ParseClockTime парсит время из строки "HH:MM", если не удается, то пробует "HH:MM:SS"
func ParseClockTime(str string) (ClockTime, error) {
	parsed, err := time.Parse(clockLayout, str)
	if err != nil {
		parsed, err = time.Parse("15:04:05", str)
		if err != nil {
			return ClockTime{}, fmt.Errorf("failed to parse time: %v", err)
		}
	}

	return ClockTime{Time: parsed}, nil
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsed, err := ParseClockTime(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return json.Marshal(nil)
	}

	return json.Marshal(t.Time.Format(clockLayout))
}

func (t ClockTime) String() string {
	return t.Time.Format(clockLayout)
}

func (t ClockTime) IsZero() bool {
	return t.Time.IsZero()
}

// Minutes возвращает количество минут с начала дня, удобно для проверки пересечений
func (t ClockTime) Minutes() int {
	return t.Time.Hour()*60 + t.Time.Minute()
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.Minutes() < other.Minutes()
}
