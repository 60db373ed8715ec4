package entity

// AlarmDirection — направление срабатывания порога.
// В исходной системе направление было неоднозначным (высокое давление
// опасно, но низкое тоже), поэтому оно настраивается на каждый порог.
type AlarmDirection string

const (
	AlarmAbove AlarmDirection = "above" // тревога при показании >= порога
	AlarmBelow AlarmDirection = "below" // тревога при показании <= порога
)

// Alarm — один настроенный порог тревоги (их может быть до трёх).
type Alarm struct {
	Level     int // номер тревоги, 1..3
	Threshold float64
	Direction AlarmDirection
}

// Triggered сообщает, срабатывает ли тревога на данном показании.
// Для нераспознанного показания тревога не срабатывает.
func (a Alarm) Triggered(r Reading) bool {
	if !r.Detected {
		return false
	}
	if a.Direction == AlarmBelow {
		return r.Value <= a.Threshold
	}
	return r.Value >= a.Threshold
}
