package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"invaders/internal/sim"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type meshBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

type Renderer struct {
	prog   uint32
	meshes [3]meshBuffers // indexed by sim.Mesh

	uModel      int32
	uView       int32
	uProjection int32
	uEye        int32
	uLightPos   int32
	uLightColor int32
	uAmbient    int32
	uDiffuse    int32
	uSpecular   int32
	uShininess  int32
	uAlpha      int32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(objectVertSrc, objectFragSrc)
	if err != nil {
		return nil, fmt.Errorf("object program: %w", err)
	}
	r := &Renderer{prog: prog}

	for _, m := range []sim.Mesh{sim.MeshCube, sim.MeshBullet, sim.MeshLaser} {
		r.meshes[m] = uploadMesh(meshVertices(m), cuboidTriangles[:])
	}

	gl.UseProgram(prog)
	r.uModel = gl.GetUniformLocation(prog, gl.Str("uModel\x00"))
	r.uView = gl.GetUniformLocation(prog, gl.Str("uView\x00"))
	r.uProjection = gl.GetUniformLocation(prog, gl.Str("uProjection\x00"))
	r.uEye = gl.GetUniformLocation(prog, gl.Str("uEyePosition\x00"))
	r.uLightPos = gl.GetUniformLocation(prog, gl.Str("uLightPosition\x00"))
	r.uLightColor = gl.GetUniformLocation(prog, gl.Str("uLightColor\x00"))
	r.uAmbient = gl.GetUniformLocation(prog, gl.Str("uAmbient\x00"))
	r.uDiffuse = gl.GetUniformLocation(prog, gl.Str("uDiffuse\x00"))
	r.uSpecular = gl.GetUniformLocation(prog, gl.Str("uSpecular\x00"))
	r.uShininess = gl.GetUniformLocation(prog, gl.Str("uShininess\x00"))
	r.uAlpha = gl.GetUniformLocation(prog, gl.Str("uAlpha\x00"))

	gl.Uniform3fv(r.uLightPos, 1, &lightPosition[0])
	gl.Uniform3fv(r.uLightColor, 1, &lightColor[0])

	gl.BindVertexArray(0)
	return r, nil
}

// uploadMesh builds a VAO from interleaved position/normal vertices.
func uploadMesh(verts []float32, idx []uint16) meshBuffers {
	var mb meshBuffers
	gl.GenVertexArrays(1, &mb.vao)
	gl.GenBuffers(1, &mb.vbo)
	gl.GenBuffers(1, &mb.ebo)
	gl.BindVertexArray(mb.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	stride := int32(6 * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aNormal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*2, gl.Ptr(idx), gl.STATIC_DRAW)
	mb.count = int32(len(idx))
	return mb
}

func (r *Renderer) Destroy() {
	for i := range r.meshes {
		mb := &r.meshes[i]
		for _, id := range []uint32{mb.vbo, mb.ebo} {
			if id != 0 {
				gl.DeleteBuffers(1, &id)
			}
		}
		if mb.vao != 0 {
			gl.DeleteVertexArrays(1, &mb.vao)
		}
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// Draw renders every visible object: opaque ones first with depth writes
// on, then translucent ones and debris blended over them with depth writes
// off.
func (r *Renderer) Draw(s *sim.State, ps *ParticleSystem, cam Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.prog)
	view := cam.View()
	proj := cam.Projection(fbW, fbH)
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProjection, 1, false, &proj[0])
	gl.Uniform3fv(r.uEye, 1, &cam.Eye[0])

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	r.drawPass(s, true)

	gl.DepthMask(false)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.drawPass(s, false)
	r.drawParticles(ps)

	gl.DepthMask(true)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawPass(s *sim.State, opaque bool) {
	bound := sim.Mesh(255)
	for i := range s.Objects {
		o := &s.Objects[i]
		mat := s.MaterialOf(o)
		if mat.Alpha <= 0 || (mat.Alpha >= 1) != opaque {
			continue
		}
		if o.Mesh != bound {
			gl.BindVertexArray(r.meshes[o.Mesh].vao)
			bound = o.Mesh
		}

		model := modelMatrix(o)
		r.setMaterial(mat)
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		gl.DrawElements(gl.TRIANGLES, r.meshes[o.Mesh].count, gl.UNSIGNED_SHORT, nil)
	}
}

func (r *Renderer) setMaterial(mat sim.Material) {
	amb, dif, spe := vec32(mat.Ambient), vec32(mat.Diffuse), vec32(mat.Specular)
	gl.Uniform3fv(r.uAmbient, 1, &amb[0])
	gl.Uniform3fv(r.uDiffuse, 1, &dif[0])
	gl.Uniform3fv(r.uSpecular, 1, &spe[0])
	gl.Uniform1f(r.uShininess, float32(mat.Shininess))
	gl.Uniform1f(r.uAlpha, float32(mat.Alpha))
}

// drawParticles draws debris as small unlit cubes.
func (r *Renderer) drawParticles(ps *ParticleSystem) {
	if ps == nil || len(ps.P) == 0 {
		return
	}
	gl.BindVertexArray(r.meshes[sim.MeshCube].vao)
	for i := range ps.P {
		p := &ps.P[i]
		r.setMaterial(sim.Material{Ambient: p.Col, Alpha: p.Alpha()})
		s := float32(p.Size)
		model := mgl32.Translate3D(float32(p.Pos[0]), float32(p.Pos[1]), float32(p.Pos[2])).
			Mul4(mgl32.Scale3D(s, s, s))
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		gl.DrawElements(gl.TRIANGLES, r.meshes[sim.MeshCube].count, gl.UNSIGNED_SHORT, nil)
	}
}

// modelMatrix places an object: T(world) * R(axes) * S(scale). The object's
// axes are the rotation's columns.
func modelMatrix(o *sim.Object) mgl32.Mat4 {
	x, y := vec32(o.XAxis), vec32(o.YAxis)
	z := x.Cross(y).Normalize()
	rot := mgl32.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	w := vec32(o.World())
	s := float32(o.Scale)
	return mgl32.Translate3D(w[0], w[1], w[2]).Mul4(rot).Mul4(mgl32.Scale3D(s, s, s))
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
