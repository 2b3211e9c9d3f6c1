package callout

// Depth counts the containers open at the current walk position.
// The zero value is ready to use and represents top level.
type Depth struct {
	n int
}

// Enter records a container opening.
func (d *Depth) Enter() {
	d.n++
}

// Leave records a container closing. It never drops below zero.
func (d *Depth) Leave() {
	if d.n > 0 {
		d.n--
	}
}

// Level returns the number of open containers.
func (d *Depth) Level() int {
	return d.n
}

// Inside reports whether at least one container is open.
func (d *Depth) Inside() bool {
	return d.n > 0
}
