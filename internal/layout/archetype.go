package layout

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Archetype тип генерации уровня. Набор закрыт: компонент раскладки
// знает все варианты и выбирает генератор через switch.
type Archetype int

const (
	Empty Archetype = iota
	Walls
	Cave
	Towers
)

// Archetypes все поддерживаемые типы в порядке объявления
var Archetypes = []Archetype{Empty, Walls, Cave, Towers}

// String возвращает имя типа уровня
func (a Archetype) String() string {
	switch a {
	case Empty:
		return "empty"
	case Walls:
		return "walls"
	case Cave:
		return "cave"
	case Towers:
		return "towers"
	default:
		return fmt.Sprintf("archetype(%d)", int(a))
	}
}

// Valid сообщает, входит ли значение в закрытый набор
func (a Archetype) Valid() bool {
	return a >= Empty && a <= Towers
}

// ParseArchetype разбирает имя типа уровня. "basic" - синоним "empty".
func ParseArchetype(s string) (Archetype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "basic":
		return Empty, nil
	case "walls":
		return Walls, nil
	case "cave":
		return Cave, nil
	case "towers", "tower":
		return Towers, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnsupportedArchetype, s)
	}
}

// MarshalText для JSON
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedArchetype, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText для JSON
func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalYAML позволяет писать в конфиге archetype: cave
func (a *Archetype) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("archetype должен быть строкой: %w", err)
	}
	return a.UnmarshalText([]byte(s))
}

// MarshalYAML записывает тип уровня строкой
func (a Archetype) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}
