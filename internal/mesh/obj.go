package mesh

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// WriteOBJ writes m as Wavefront OBJ: optional "# " comment lines, then one
// "v x y z" line per vertex and one "f i j k l" line per face.
func WriteOBJ(w io.Writer, m *Mesh, header ...string) error {
	bw := bufio.NewWriter(w)

	for _, h := range header {
		if _, err := fmt.Fprintf(bw, "# %s\n", h); err != nil {
			return err
		}
	}
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d %d\n", f[0], f[1], f[2], f[3]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// OBJ returns m encoded by WriteOBJ.
func (m *Mesh) OBJ(header ...string) []byte {
	var buf bytes.Buffer
	_ = WriteOBJ(&buf, m, header...) // bytes.Buffer never fails
	return buf.Bytes()
}
