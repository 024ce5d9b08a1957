package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level is the verbosity selected by --trace-level.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только спаны, завершившиеся ошибкой
	LevelPhase        // файлы и фазы
	LevelDetail       // плюс методы
	LevelDebug        // всё
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String; "" means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	i := slices.Index(levelNames, s)
	if i < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
	}
	return Level(i), nil
}

// ShouldEmit reports whether spans of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeModule
	case LevelDebug:
		return true
	}
	return false
}

func (l Level) accepts(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	return ev.Err != "" || l.ShouldEmit(ev.Scope)
}
