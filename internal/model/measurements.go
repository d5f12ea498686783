package model

import "strings"

// Measurements maps named body-measurement fields to user-entered values.
// Values are unit-less strings, exactly as typed.
type Measurements map[string]string

// MeasurementFields lists the fields offered by the measurement form, in display order.
var MeasurementFields = []string{
	"neck",
	"shoulder",
	"chest",
	"waist",
	"hips",
	"sleeveLength",
	"shirtLength",
	"pantWaist",
	"pantLength",
	"inseam",
	"thigh",
}

// Clean returns a copy with blank keys and values removed and values trimmed.
// A nil receiver yields an empty, non-nil map.
func (m Measurements) Clean() Measurements {
	out := make(Measurements, len(m))
	for k, v := range m {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
