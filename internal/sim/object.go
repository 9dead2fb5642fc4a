package sim

import "github.com/go-gl/mathgl/mgl64"

type Role uint8

const (
	RoleEnemy Role = iota
	RoleFallingEnemy
	RolePlayer
	RolePlayerBullet
	RolePlayerLaser
	RoleEnemyBullet
	RoleEnemyLaser
)

func (r Role) String() string {
	switch r {
	case RoleEnemy:
		return "enemy"
	case RoleFallingEnemy:
		return "falling-enemy"
	case RolePlayer:
		return "player"
	case RolePlayerBullet:
		return "player-bullet"
	case RolePlayerLaser:
		return "player-laser"
	case RoleEnemyBullet:
		return "enemy-bullet"
	case RoleEnemyLaser:
		return "enemy-laser"
	}
	return "unknown"
}

// IsLaser reports whether objects of this role resolve as rays with a countdown.
func (r Role) IsLaser() bool { return r == RolePlayerLaser || r == RoleEnemyLaser }

// IsProjectile reports whether objects of this role are pool slots.
func (r Role) IsProjectile() bool { return r >= RolePlayerBullet }

// Mesh selects the geometry the renderer uses for an object.
type Mesh uint8

const (
	MeshCube Mesh = iota
	MeshBullet
	MeshLaser
)

// PaletteSlot binds a formation enemy's ambient colour to one of the two
// shared palette entries that swap on every formation turn.
type PaletteSlot uint8

const (
	PaletteNone PaletteSlot = iota
	PaletteA
	PaletteB
)

type Material struct {
	Ambient   mgl64.Vec3
	Diffuse   mgl64.Vec3
	Specular  mgl64.Vec3
	Shininess float64
	Alpha     float64 // 0 = invisible and intangible
}

var basicMaterial = Material{
	Ambient:   mgl64.Vec3{0.1, 0.1, 0.1},
	Diffuse:   mgl64.Vec3{0, 0, 0},
	Specular:  mgl64.Vec3{0.3, 0.3, 0.3},
	Shininess: 11,
	Alpha:     1,
}

// Material colours.
var (
	PaletteAmbientA     = mgl64.Vec3{0.1, 0.1, 0.1}
	PaletteAmbientB     = mgl64.Vec3{0.5, 0.5, 0.5}
	FallingEnemyAmbient = mgl64.Vec3{0.3, 0.1, 0.1}
	PlayerDiffuse       = mgl64.Vec3{0, 0, 1}
	BulletDiffuse       = mgl64.Vec3{1, 0.7, 0}
	LaserAmbient        = mgl64.Vec3{1, 0.1, 0}

	defaultXAxis = mgl64.Vec3{1, 0, 0}
	defaultYAxis = mgl64.Vec3{0, 1, 0}
)

// Object is one entity in the registry. Objects are never created or removed
// after New; they change Role or Active instead.
type Object struct {
	Role Role
	// Active is false once an enemy or the player is destroyed. For pool
	// slots it is the in-flight flag.
	Active bool

	Offset      mgl64.Vec3 // fixed anchor
	Translation mgl64.Vec3 // advanced by the simulation
	Scale       float64    // half-extent on every axis
	Tallness    float64    // extra Y multiplier on Scale; 1 for cubes
	XAxis       mgl64.Vec3
	YAxis       mgl64.Vec3
	Mesh        Mesh

	Material Material
	Palette  PaletteSlot

	// Enemies.
	ShotsFired   int
	ShotCooldown int
	Amplitude    float64
	Frequency    float64
	Phase        float64

	// Projectiles.
	LaserCountdown     int
	HorizontalMovement float64
}

// World returns the object's world position: anchor plus translation.
func (o *Object) World() mgl64.Vec3 {
	return o.Offset.Add(o.Translation)
}

// Bounds returns the object's axis-aligned box.
func (o *Object) Bounds() Box {
	tall := o.Tallness
	if tall == 0 {
		tall = 1
	}
	return Box{
		Center: o.World(),
		Half:   mgl64.Vec3{o.Scale, o.Scale * tall, o.Scale},
	}
}

// deactivate makes the object invisible and intangible.
func (o *Object) deactivate() {
	o.Active = false
	o.Material.Alpha = 0
}

// activate brings a pool slot into flight.
func (o *Object) activate() {
	o.Active = true
	o.Material.Alpha = 1
}
