package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/solar-roi/pkg/math"
)

func TestWriteOBJ(t *testing.T) {
	m := &Mesh{}
	m.AppendBox([4]math.Vec3{
		{X: 0, Y: 0},
		{X: 1.5, Y: 0},
		{X: 1.5, Y: 1},
		{X: 0, Y: 1},
	}, 1)

	want := `# region
v 0.000000 0.000000 0.000000
v 1.500000 0.000000 0.000000
v 1.500000 1.000000 0.000000
v 0.000000 1.000000 0.000000
v 0.000000 0.000000 -1.000000
v 1.500000 0.000000 -1.000000
v 1.500000 1.000000 -1.000000
v 0.000000 1.000000 -1.000000
f 1 2 3 4
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`
	assert.Equal(t, want, string(m.OBJ("region")))
}

func TestWriteOBJEmpty(t *testing.T) {
	assert.Empty(t, (&Mesh{}).OBJ())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteOBJPropagatesWriteError(t *testing.T) {
	m := &Mesh{}
	m.AppendBox(flatCorners, 1)
	assert.EqualError(t, WriteOBJ(failingWriter{}, m), "disk full")
}
