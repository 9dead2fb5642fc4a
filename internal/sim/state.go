package sim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Input is the host's view of the controls for one tick.
type Input struct {
	MoveLeft  bool // level-triggered
	MoveRight bool // level-triggered
	Fire      bool // edge-triggered, consumed by the next Step
	Lasers    bool // debug: switch every pool to its laser slots
}

// State is the whole simulation: the entity registry plus the controller
// state that used to live in globals. Only Step mutates it during play.
type State struct {
	// Objects is the entity registry. Its length never changes.
	Objects []Object

	cols, rows int

	player            int
	enemyBulletSlots  []int
	enemyLaserSlots   []int
	playerBulletSlots []int
	playerLaserSlots  []int

	EnemyPool  Pool
	PlayerPool Pool

	// FormationPos is the lateral offset shared by every formation enemy.
	FormationPos float64
	// FormationDir is +1 or -1.
	FormationDir float64
	// Palette holds the two checkerboard ambient colours; PaletteA reads
	// index 0 and PaletteB index 1.
	Palette [2]mgl64.Vec3

	// AttackCountdown is the number of ticks until the next dive.
	AttackCountdown float64

	Tick  int
	Bus   *EventBus
	src   Source
	input Input
	kills int
}

type Option func(*options)

type options struct {
	src          Source
	cols, rows   int
	enemyBullets int
}

// WithSeed seeds the default deterministic source.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.src = NewRand(seed) }
}

// WithSource injects the random source used for attack timing and wobble.
func WithSource(src Source) Option {
	return func(o *options) { o.src = src }
}

// WithGrid sets the formation size.
func WithGrid(cols, rows int) Option {
	return func(o *options) {
		o.cols = cols
		o.rows = rows
	}
}

// WithEnemyBullets sets the number of enemy bullet/laser slot pairs.
func WithEnemyBullets(n int) Option {
	return func(o *options) { o.enemyBullets = n }
}

// New builds the registry and controller state. Every object the game will
// ever use is created here.
func New(opts ...Option) *State {
	o := options{
		cols:         EnemyCols,
		rows:         EnemyRows,
		enemyBullets: EnemyBulletCount,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.src == nil {
		o.src = NewRand(uint64(time.Now().UnixNano()))
	}
	if o.cols < 0 {
		o.cols = 0
	}
	if o.rows < 0 {
		o.rows = 0
	}
	if o.enemyBullets < 0 {
		o.enemyBullets = 0
	}

	s := &State{
		cols:         o.cols,
		rows:         o.rows,
		FormationDir: -1,
		Palette:      [2]mgl64.Vec3{PaletteAmbientA, PaletteAmbientB},
		Bus:          NewEventBus(),
		src:          o.src,
	}
	s.build(o.enemyBullets)
	s.EnemyPool = newPool(s.enemyBulletSlots)
	s.PlayerPool = newPool(s.playerBulletSlots)
	s.AttackCountdown = spread(s.src, EnemyAttackWait, EnemyAttackWaitRange)
	return s
}

func (s *State) build(enemyBullets int) {
	s.Objects = make([]Object, 0, s.cols*s.rows+1+2*enemyBullets+2)

	for x := 0; x < s.cols; x++ {
		for y := 0; y < s.rows; y++ {
			offset := mgl64.Vec3{
				EnemiesCenterStart[0] + EnemySpacing*(float64(x)-float64(s.cols-1)/2),
				EnemiesCenterStart[1] + EnemySpacing*(float64(y)-float64(s.rows-1)/2),
				EnemiesCenterStart[2],
			}
			slot := PaletteB
			if (x+y)%2 == 1 {
				slot = PaletteA
			}
			s.add(Object{
				Role:     RoleEnemy,
				Active:   true,
				Offset:   offset,
				Scale:    EnemyScale,
				Mesh:     MeshCube,
				Material: basicMaterial,
				Palette:  slot,
			})
		}
	}

	player := basicMaterial
	player.Diffuse = PlayerDiffuse
	s.player = s.add(Object{
		Role:     RolePlayer,
		Active:   true,
		Offset:   mgl64.Vec3(PlayerStart),
		Scale:    PlayerScale,
		Mesh:     MeshCube,
		Material: player,
	})

	for i := 0; i < enemyBullets; i++ {
		s.enemyBulletSlots = append(s.enemyBulletSlots, s.add(newBullet(RoleEnemyBullet)))
		s.enemyLaserSlots = append(s.enemyLaserSlots, s.add(newLaser(RoleEnemyLaser)))
	}
	s.playerBulletSlots = []int{s.add(newBullet(RolePlayerBullet))}
	s.playerLaserSlots = []int{s.add(newLaser(RolePlayerLaser))}
}

func newBullet(role Role) Object {
	m := basicMaterial
	m.Diffuse = BulletDiffuse
	m.Alpha = 0
	return Object{
		Role:     role,
		Scale:    BulletScale,
		Tallness: BulletTallness,
		Mesh:     MeshBullet,
		Material: m,
	}
}

func newLaser(role Role) Object {
	m := basicMaterial
	m.Ambient = LaserAmbient
	m.Alpha = 0
	return Object{
		Role:     role,
		Scale:    BulletScale,
		Mesh:     MeshLaser,
		Material: m,
	}
}

func (s *State) add(o Object) int {
	o.Tallness = max(o.Tallness, 1)
	o.XAxis = defaultXAxis
	o.YAxis = defaultYAxis
	s.Objects = append(s.Objects, o)
	return len(s.Objects) - 1
}

// Player returns the player object. It stays in the registry after death
// with Active false.
func (s *State) Player() *Object { return &s.Objects[s.player] }

// Rows returns the formation's row count.
func (s *State) Rows() int { return s.rows }

// SetInput latches the controls for the next Step. Fire and Lasers stay
// latched until a Step consumes them.
func (s *State) SetInput(in Input) {
	s.input.MoveLeft = in.MoveLeft
	s.input.MoveRight = in.MoveRight
	s.input.Fire = s.input.Fire || in.Fire
	s.input.Lasers = s.input.Lasers || in.Lasers
}

// MaterialOf resolves an object's material, substituting the palette ambient
// for formation enemies bound to a palette slot.
func (s *State) MaterialOf(o *Object) Material {
	m := o.Material
	switch o.Palette {
	case PaletteA:
		m.Ambient = s.Palette[0]
	case PaletteB:
		m.Ambient = s.Palette[1]
	}
	return m
}

// Step advances the simulation by one tick. Controller order is fixed:
// each stage sees every mutation made by the stages before it.
func (s *State) Step() {
	s.Tick++
	if s.input.Lasers {
		s.input.Lasers = false
		s.ConvertToLasers()
	}
	s.updateFormation()
	s.updateFalling()
	s.updatePlayer()
	s.collideFallingWithPlayer()
	s.updatePlayerProjectiles()
	s.updateEnemyProjectiles()
}

func (s *State) emit(t EventType, idx int) {
	o := &s.Objects[idx]
	s.Bus.Emit(Event{Type: t, Tick: s.Tick, Index: idx, Role: o.Role, Pos: o.World()})
}

// ConvertToLasers retires every slot in both pools and switches them to the
// laser slots. Calling it again retires lasers in flight.
func (s *State) ConvertToLasers() {
	s.EnemyPool.RetireAll(s.Objects)
	s.PlayerPool.RetireAll(s.Objects)
	s.EnemyPool.rebind(s.enemyLaserSlots)
	s.PlayerPool.rebind(s.playerLaserSlots)
	s.Bus.Emit(Event{Type: EventLasersArmed, Tick: s.Tick, Index: -1})
}
