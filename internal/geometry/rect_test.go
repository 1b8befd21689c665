package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_DerivedValues(t *testing.T) {
	r := NewRect(10, 20, 300, 400)

	assert.Equal(t, 310.0, r.X2())
	assert.Equal(t, 420.0, r.Y2())
	assert.Equal(t, 120000.0, r.Area())
}

func TestRect_Intersects(t *testing.T) {
	base := NewRect(0, 0, 100, 100)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(50, 50, 100, 100), true},
		{"contained", NewRect(25, 25, 50, 50), true},
		{"identical", NewRect(0, 0, 100, 100), true},
		{"disjoint", NewRect(200, 200, 50, 50), false},
		{"touching right edge", NewRect(100, 0, 50, 100), false},
		{"touching top edge", NewRect(0, 100, 100, 50), false},
		{"touching corner", NewRect(100, 100, 10, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base), "intersection must be symmetric")
		})
	}
}

func TestRect_Contains(t *testing.T) {
	base := NewRect(0, 0, 100, 100)

	assert.True(t, base.Contains(NewRect(10, 10, 50, 50)))
	assert.True(t, base.Contains(base), "a rect contains itself")
	assert.True(t, base.Contains(NewRect(0, 0, 100, 50)), "borders are inclusive")
	assert.False(t, base.Contains(NewRect(50, 50, 100, 100)))
	assert.False(t, base.Contains(NewRect(-10, 0, 50, 50)))
}
