package trace

import "time"

type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end"}

func (k Kind) String() string { return lookupName(kindNames[:], int(k)) }

// Scope is how coarse a span is; smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // пачка или один файл
	ScopePass                    // фаза
	ScopeModule                  // метод
	ScopeNode                    // оператор
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeModule: "module",
	ScopeNode:   "node",
}

func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

func lookupName(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// Event is one span boundary.
type Event struct {
	Time     time.Time
	Seq      uint64 // проставляет StreamTracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корня
	Name     string // "batch", "file:a.j", "lower", "lower:%Point_sum"
	Detail   string
	Err      string // только у KindSpanEnd
	Extra    map[string]string
	Elapsed  time.Duration // только у KindSpanEnd
}

func (ev *Event) clone() Event {
	cp := *ev
	if ev.Extra != nil {
		cp.Extra = make(map[string]string, len(ev.Extra))
		for k, v := range ev.Extra {
			cp.Extra[k] = v
		}
	}
	return cp
}
