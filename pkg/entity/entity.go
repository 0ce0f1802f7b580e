package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Arity is the number of attributes every entity carries.
const Arity = 6

// Vars is an entity's attribute vector.
type Vars [Arity]float64

// ID identifies an entity. Data sources may use strings or numbers. Numbers
// are stored in the canonical form produced by [FormatValue], so 1, 1.0 and
// 1e0 all name the same entity.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", data)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("id %s: %w", data, err)
	}
	*id = ID(FormatValue(f))
	return nil
}

// Entity is one visualized record.
type Entity struct {
	ID   ID   `json:"id"`
	Vars Vars `json:"vars"`
}

// Collection is an ordered set of entities with unique ids.
// Order is significant: it drives rotation and table rows.
type Collection []Entity

// Len returns the number of entities.
func (c Collection) Len() int { return len(c) }

// Index returns the position of id in c, or -1.
func (c Collection) Index(id ID) int {
	for i, e := range c {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// IDs returns the entity ids in collection order.
func (c Collection) IDs() []ID {
	ids := make([]ID, len(c))
	for i, e := range c {
		ids[i] = e.ID
	}
	return ids
}

// Rotate returns a new collection in which position i holds the vars of
// position (i+1) mod n. Ids keep their positions.
func Rotate(c Collection) Collection {
	n := len(c)
	out := make(Collection, n)
	for i := range c {
		out[i] = Entity{ID: c[i].ID, Vars: c[(i+1)%n].Vars}
	}
	return out
}

// FormatValue renders an attribute value the way it appears in labels and
// table cells: shortest representation, no trailing zeros. Magnitudes of
// 1e21 and above or below 1e-6 switch to exponent form ("1e+21", "1e-7").
func FormatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	if a := math.Abs(v); a < 1e21 && a >= 1e-6 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}
