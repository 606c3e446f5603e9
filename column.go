package slippi

// column is an append-only, struct-of-arrays primitive builder: a flat
// slice of values paired with a lazily-allocated validity bitmap. A field
// that is absent for every row in a replay's version never allocates a
// bitmap at all; one appears only once something pushes a null, at which
// point every prior row is backfilled as valid.
type column[T any] struct {
	values []T
	valid  *validity
}

func (c *column[T]) push(v T) {
	c.values = append(c.values, v)
	if c.valid != nil {
		c.valid.push(true)
	}
}

func (c *column[T]) pushNull() {
	if c.valid == nil {
		c.valid = newValidity(len(c.values))
	}
	var zero T
	c.values = append(c.values, zero)
	c.valid.push(false)
}

func (c *column[T]) len() int {
	return len(c.values)
}

// get returns the row's value and whether it is valid (non-null).
func (c *column[T]) get(i int) (T, bool) {
	v := c.values[i]
	if c.valid == nil {
		return v, true
	}
	return v, c.valid.get(i)
}
