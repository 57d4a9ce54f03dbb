package command

import (
	"errors"
	"fmt"

	"switchctl/internal/encoder"
)

// ErrUnknownAction is returned for an action id the registry does not hold.
var ErrUnknownAction = errors.New("unknown action")

// Action is one user facing operation: its option schema and the ordered
// register writes it emits.
type Action struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Options []Option `json:"options"`

	emit func(v Values) []Write
}

// Values resolves raw params against the option schema.
func (a Action) Values(p Params) Values {
	v := make(Values, len(a.Options))
	for _, o := range a.Options {
		raw, ok := p[o.ID]
		v[o.ID] = o.normalize(raw, ok)
	}
	return v
}

// clone copies the option schema so callers cannot reach registry state.
func (a Action) clone() Action {
	opts := make([]Option, len(a.Options))
	for i, o := range a.Options {
		if o.Choices != nil {
			o.Choices = append([]Choice(nil), o.Choices...)
		}
		opts[i] = o
	}
	a.Options = opts
	return a
}

// Encode returns the writes for p in emission order.
func (a Action) Encode(p Params) []Write {
	return a.emit(a.Values(p))
}

// Registry maps action ids to their descriptors. It is built once and
// never modified afterwards, so it is safe for concurrent use.
type Registry struct {
	actions map[string]Action
	order   []string
}

// NewRegistry builds every action against the given choice lists.
func NewRegistry(c Choices) *Registry {
	r := &Registry{actions: make(map[string]Action)}
	for _, a := range buildActions(c) {
		if _, dup := r.actions[a.ID]; dup {
			panic("command: duplicate action " + a.ID)
		}
		r.actions[a.ID] = a.clone()
		r.order = append(r.order, a.ID)
	}
	return r
}

// Action looks up one action. The result is a copy.
func (r *Registry) Action(id string) (Action, bool) {
	a, ok := r.actions[id]
	if !ok {
		return Action{}, false
	}
	return a.clone(), true
}

// Actions lists copies of all actions in declaration order.
func (r *Registry) Actions() []Action {
	out := make([]Action, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.actions[id].clone())
	}
	return out
}

// Encode resolves id and encodes p. Out of range values are normalized,
// never rejected; the only error is an unknown id.
func (r *Registry) Encode(id string, p Params) ([]Write, error) {
	a, ok := r.actions[id]
	if !ok {
		return nil, fmt.Errorf("command: %q: %w", id, ErrUnknownAction)
	}
	return a.Encode(p), nil
}

// Run encodes the action and hands each write to s, back-to-back, in order.
func (r *Registry) Run(id string, p Params, s Sink) ([]Write, error) {
	writes, err := r.Encode(id, p)
	if err != nil {
		return nil, err
	}
	Send(s, writes)
	return writes, nil
}

// Send forwards writes to s in order, one call per write.
func Send(s Sink, writes []Write) {
	for _, w := range writes {
		s.SendCommand(w.Address.String(), encoder.Hex(w.Value...))
	}
}
