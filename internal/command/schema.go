package command

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the input type of an option.
type Kind int

const (
	Dropdown Kind = iota
	Number
)

func (k Kind) String() string {
	switch k {
	case Dropdown:
		return "dropdown"
	case Number:
		return "number"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Choice is one legal value of a dropdown option.
type Choice struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Option describes one input of an action and its constraints.
type Option struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"type"`
	Default float64  `json:"default"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Step    float64  `json:"step"`
	Choices []Choice `json:"choices,omitempty"`
}

// MarshalJSON keeps min, max and step (zero included) on number options
// and leaves them off dropdowns, which are bounded by their choices.
func (o Option) MarshalJSON() ([]byte, error) {
	type bounds struct {
		ID      string   `json:"id"`
		Label   string   `json:"label"`
		Kind    Kind     `json:"type"`
		Default float64  `json:"default"`
		Min     *float64 `json:"min,omitempty"`
		Max     *float64 `json:"max,omitempty"`
		Step    *float64 `json:"step,omitempty"`
		Choices []Choice `json:"choices,omitempty"`
	}
	out := bounds{ID: o.ID, Label: o.Label, Kind: o.Kind, Default: o.Default, Choices: o.Choices}
	if o.Kind == Number {
		out.Min, out.Max, out.Step = &o.Min, &o.Max, &o.Step
	}
	return json.Marshal(out)
}

func dropdown(id, label string, def int, choices []Choice) Option {
	return Option{ID: id, Label: label, Kind: Dropdown, Default: float64(def), Choices: choices}
}

// dropdownFirst defaults to the first choice.
func dropdownFirst(id, label string, choices []Choice) Option {
	def := 0
	if len(choices) > 0 {
		def = choices[0].ID
	}
	return dropdown(id, label, def, choices)
}

func number(id, label string, min, max, step, def float64) Option {
	return Option{ID: id, Label: label, Kind: Number, Default: def, Min: min, Max: max, Step: step}
}

// normalize maps a raw request value onto the option's domain. Missing or
// unreadable values take the default, numbers are clamped, dropdown values
// outside the choice list fall back to the default. Step is advisory only:
// the encoders round once, so numbers reach them unrounded.
func (o Option) normalize(raw interface{}, present bool) float64 {
	v, ok := toFloat(raw)
	if !present || !ok || math.IsNaN(v) {
		return o.Default
	}

	switch o.Kind {
	case Number:
		if o.Max > o.Min {
			v = math.Max(o.Min, math.Min(o.Max, v))
		}
		return v
	default:
		for _, c := range o.Choices {
			if float64(c.ID) == v {
				return v
			}
		}
		return o.Default
	}
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(v)
		if h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"); h != s {
			i, err := strconv.ParseUint(h, 16, 32)
			return float64(i), err == nil
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
