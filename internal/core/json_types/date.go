package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date - календарная дата без времени суток
// В JSON сериализуется как "YYYY-MM-DD", сравнение таких строк лексикографически безопасно
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate парсит дату из строки "YYYY-MM-DD", если не удается, то пробует RFC3339 и отбрасывает время
func ParseDate(str string) (Date, error) {
	parsed, err := time.ParseInLocation(dateLayout, str, time.UTC)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return Date{}, fmt.Errorf("failed to parse date: %v", err)
		}
	}

	return Date{Date: time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)}, nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Date.IsZero() {
		return json.Marshal(nil)
	}

	return json.Marshal(d.Date.Format(dateLayout))
}

func (d Date) String() string {
	return d.Date.Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

func (d Date) Equal(other Date) bool {
	return d.Date.Equal(other.Date)
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

func (d Date) After(other Date) bool {
	return d.Date.After(other.Date)
}

func (d Date) AddDays(days int) Date {
	return Date{Date: d.Date.AddDate(0, 0, days)}
}

func (d Date) Weekday() time.Weekday {
	return d.Date.Weekday()
}
