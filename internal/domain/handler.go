package domain

import "fmt"

// Param is the role of one slot in a handler's parameter list
type Param int

const (
	// ParamValue is filled from the positional values (console tokens or bound args)
	ParamValue Param = iota
	// ParamBag receives the shared Bag
	ParamBag
)

func (p Param) String() string {
	switch p {
	case ParamValue:
		return "value"
	case ParamBag:
		return "bag"
	default:
		return "unknown"
	}
}

// HandlerFunc is the callable behind commands, keybinds and services
type HandlerFunc func(args Args) error

// Handler pairs a callable with the ordered role descriptor used for Bag injection
type Handler struct {
	Fn     HandlerFunc
	Params []Param
}

// WantsBag reports whether any slot asks for the Bag
func (h Handler) WantsBag() bool {
	for _, p := range h.Params {
		if p == ParamBag {
			return true
		}
	}
	return false
}

// BuildArgs inserts the bag at every index whose role is ParamBag, keeping the
// positional values in order. An index past the end appends.
func BuildArgs(params []Param, bag Bag, positional []any) Args {
	args := make(Args, 0, len(positional)+len(params))
	args = append(args, positional...)

	for i, p := range params {
		if p != ParamBag {
			continue
		}
		if i >= len(args) {
			args = append(args, bag)
			continue
		}
		args = append(args, nil)
		copy(args[i+1:], args[i:])
		args[i] = bag
	}

	return args
}

// Args is the execution argument list handed to a HandlerFunc
type Args []any

// Len returns the number of arguments
func (a Args) Len() int {
	return len(a)
}

// Bag returns the argument at i as a Bag, or nil
func (a Args) Bag(i int) Bag {
	if i < 0 || i >= len(a) {
		return nil
	}
	b, _ := a[i].(Bag)
	return b
}

// String returns the argument at i formatted as a string, or "" when out of range
func (a Args) String(i int) string {
	if i < 0 || i >= len(a) {
		return ""
	}
	if s, ok := a[i].(string); ok {
		return s
	}
	return fmt.Sprint(a[i])
}

// Bool returns the argument at i as a bool; non-bool values report false
func (a Args) Bool(i int) bool {
	if i < 0 || i >= len(a) {
		return false
	}
	b, _ := a[i].(bool)
	return b
}

// Values returns every argument that is not the Bag
func (a Args) Values() []any {
	values := make([]any, 0, len(a))
	for _, v := range a {
		if _, ok := v.(Bag); ok {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Command is a console-reachable handler keyed by (group, name)
type Command struct {
	Name        string
	Group       string
	Description string
	Handler     Handler
	Synchronous bool
}

// Key returns the registry key for the command
func (c *Command) Key() string {
	return c.Group + " " + c.Name
}

// Keybind is a global hotkey
type Keybind struct {
	Combo   string
	Handler Handler
	Args    []any
}

// Service is a startup-only task with no console-reachable name
type Service struct {
	Name    string
	Handler Handler
	Args    []any
}
