package entity

import "math"

// DialProfile описывает физическую разметку циферблата: где находится
// минимум шкалы, какой угол она занимает и в какую сторону растёт.
// В исходных прошивках встречаются оба варианта разметки, поэтому профиль
// выбирается конфигурацией, а не зашит в движок.
type DialProfile struct {
	Name             string
	StartAngleDeg    float64 // угол минимума шкалы, градусы
	SweepAngleDeg    float64 // полный ход шкалы, градусы
	OrientationOffs  float64 // фиксированный поворот ориентации кандидата, градусы
	Counterclockwise bool    // true — шкала растёт против часовой стрелки
}

// ProfileStandard — типовой манометр: минимум на "7 часах" (225°),
// ход 270° по часовой стрелке.
var ProfileStandard = DialProfile{
	Name:            "standard",
	StartAngleDeg:   225,
	SweepAngleDeg:   270,
	OrientationOffs: 90,
}

// ProfileMirrored — зеркальная разметка: минимум на 135°, ось направлена
// в противоположную сторону.
var ProfileMirrored = DialProfile{
	Name:             "mirrored",
	StartAngleDeg:    135,
	SweepAngleDeg:    270,
	OrientationOffs:  90,
	Counterclockwise: true,
}

// ProfileByName возвращает профиль по имени из конфигурации.
func ProfileByName(name string) (DialProfile, bool) {
	switch name {
	case "", ProfileStandard.Name:
		return ProfileStandard, true
	case ProfileMirrored.Name:
		return ProfileMirrored, true
	}
	return DialProfile{}, false
}

// Calibration — настройки пересчёта угла стрелки в показание.
type Calibration struct {
	MinValue float64
	MaxValue float64
	Profile  DialProfile
}

// NewCalibration создаёт калибровку со стандартным профилем циферблата.
func NewCalibration(minValue, maxValue float64) Calibration {
	return Calibration{MinValue: minValue, MaxValue: maxValue, Profile: ProfileStandard}
}

// ReadingFromAngle переводит ориентацию стрелки (радианы) в показание шкалы.
// Чистая функция: одинаковые аргументы всегда дают одинаковый результат.
//
// Ориентация из анализа областей определена только по модулю 180° (у большой
// оси эллипса нет направления), поэтому после приведения к кругу проверяется
// и противоположный конец стрелки: если исходный угол выпал за пределы хода
// шкалы, а антипод попал в [0, sweep] — берётся антипод, иначе значение
// прижимается к краю шкалы.
func (c Calibration) ReadingFromAngle(angleRad float64) Reading {
	needle := math.Mod(angleRad*180/math.Pi+c.Profile.OrientationOffs, 360)
	if needle < 0 {
		needle += 360
	}

	sweep := c.Profile.SweepAngleDeg
	relative := c.relativeAngle(needle)
	if relative > sweep {
		alt := c.relativeAngle(needle + 180)
		if alt <= sweep {
			relative = alt
		} else {
			relative = sweep
		}
	}

	fraction := relative / sweep
	value := c.MinValue + fraction*(c.MaxValue-c.MinValue)
	value = math.Max(c.MinValue, math.Min(c.MaxValue, value))
	return NewReading(value)
}

// relativeAngle — угол стрелки относительно начала шкалы с учётом
// направления её роста, в диапазоне [0, 360).
func (c Calibration) relativeAngle(needleDeg float64) float64 {
	var rel float64
	if c.Profile.Counterclockwise {
		rel = math.Mod(c.Profile.StartAngleDeg-needleDeg, 360)
	} else {
		rel = math.Mod(needleDeg-c.Profile.StartAngleDeg, 360)
	}
	if rel < 0 {
		rel += 360
	}
	return rel
}
