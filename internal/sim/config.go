package sim

import "math"

// Formation grid.
const (
	EnemyCols  = 12
	EnemyRows  = 3
	EnemyScale = 0.05
	// Grid cells are three half-extents apart, leaving one enemy width of gap.
	EnemySpacing = EnemyScale * 3
)

// EnemiesCenterStart is the world-space centre of the formation at startup.
var EnemiesCenterStart = [3]float64{0.5, 1.55, 0.95}

// Player.
const (
	PlayerScale      = 0.07
	PlayerSpeed      = 0.005
	PlayerSideBounds = 1.3
)

// PlayerStart is the player's fixed anchor; only its translation moves.
var PlayerStart = [3]float64{0.5, -0.6, 0.95}

// Formation sweep. Bounds are plus or minus.
const (
	EnemyBackforthSpeed = 0.001
	EnemySideBounds     = 0.4
)

// Attack scheduling: average ticks between dives and the uniform range around it.
const (
	EnemyAttackWait      = 500
	EnemyAttackWaitRange = 500
)

// Falling enemies.
const (
	EnemyFallSpeed   = 0.005
	EnemyBottomBound = -3.0

	EnemyFallAmplitude      = 0.3
	EnemyFallAmplitudeRange = 0.3
	// Frequency is applied to translation Y, so it is effectively scaled by fall speed.
	EnemyFallFrequency      = 2.0
	EnemyFallFrequencyRange = 2.0
	EnemyFallPhaseRange     = math.Pi * 2
)

// Projectiles.
const (
	BulletScale    = 0.01
	BulletTallness = 2.0

	EnemyBulletSpeed       = 0.02
	EnemyBulletBottomBound = -1.0
	EnemyLaserDuration     = 100
	EnemyBulletCount       = 10

	MaxEnemyShots     = 3
	EnemyShotCooldown = 100

	PlayerBulletSpeed    = 0.02
	PlayerBulletTopBound = 2.0
	PlayerLaserDuration  = 100
)

// FireThresholdY is the world Y a falling enemy must drop to before it may shoot:
// half a row below the bottom row of a formation with the given row count.
func FireThresholdY(rows int) float64 {
	return EnemiesCenterStart[1] - EnemySpacing*float64(rows+1)/2
}
