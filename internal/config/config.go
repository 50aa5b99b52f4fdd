// Package config provides YAML-based portal configuration: storage, servers,
// leaderboard defaults and per-game tuning.
package config

import (
	"fmt"
	"sync"
	"time"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// PortalConfig is the root of portal.yaml.
type PortalConfig struct {
	LogLevel    string            `yaml:"log_level"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Admins      []string          `yaml:"admins"`
	Games       GamesConfig       `yaml:"games"`
}

// StorageConfig selects and addresses the persistence backend.
type StorageConfig struct {
	Driver         string `yaml:"driver"`
	Path           string `yaml:"path"` // SQLite file
	DSN            string `yaml:"dsn"`  // PostgreSQL connection string
	ConnectRetries uint64 `yaml:"connect_retries"`
}

// ServerConfig holds listen addresses for `arcade serve`.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HTTPAddr    string        `yaml:"http_addr"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LeaderboardConfig holds leaderboard presentation defaults.
type LeaderboardConfig struct {
	TopN int `yaml:"top_n"`
}

// GamesConfig carries the tunables of every game.
type GamesConfig struct {
	Pingpong     PingpongConfig     `yaml:"pingpong"`
	Snake        SnakeConfig        `yaml:"snake"`
	FlappyBox    FlappyBoxConfig    `yaml:"flappybox"`
	SpaceShooter SpaceShooterConfig `yaml:"spaceshooter"`
	AvoidEnemy   AvoidEnemyConfig   `yaml:"avoidenemy"`
	MazeEscape   MazeEscapeConfig   `yaml:"mazeescape"`
	GuessColor   GuessColorConfig   `yaml:"guesscolor"`
}

// PingpongConfig defines ball and paddle parameters.
type PingpongConfig struct {
	BallRadius       float64 `yaml:"ball_radius"`
	BallSpeed        float64 `yaml:"ball_speed"`
	PaddleWidthRatio float64 `yaml:"paddle_width_ratio"`
	PaddleHeight     float64 `yaml:"paddle_height"`
	PaddleOffset     float64 `yaml:"paddle_offset"` // distance of paddle top from the bottom edge
	PaddleSpeed      float64 `yaml:"paddle_speed"`  // keyboard movement per tick
}

// SnakeConfig defines grid and step timing.
type SnakeConfig struct {
	GridSize  int           `yaml:"grid_size"`
	StepDelay time.Duration `yaml:"step_delay"`
}

// FlappyBoxConfig defines physics and pipe parameters.
type FlappyBoxConfig struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	BoxX        float64 `yaml:"box_x"`
	BoxSize     float64 `yaml:"box_size"`
	PipeWidth   float64 `yaml:"pipe_width"`
	PipeGap     float64 `yaml:"pipe_gap"`
	PipeSpeed   float64 `yaml:"pipe_speed"`
	PipeSpacing float64 `yaml:"pipe_spacing"`
}

// SpaceShooterConfig defines ship, bullet and enemy parameters.
type SpaceShooterConfig struct {
	PlayerSpeed   float64 `yaml:"player_speed"`
	BulletSpeed   float64 `yaml:"bullet_speed"`
	EnemyCount    int     `yaml:"enemy_count"`
	EnemyMinSpeed float64 `yaml:"enemy_min_speed"`
	EnemyMaxSpeed float64 `yaml:"enemy_max_speed"`
}

// AvoidEnemyConfig defines player and enemy parameters.
type AvoidEnemyConfig struct {
	PlayerSize    float64 `yaml:"player_size"`
	PlayerSpeed   float64 `yaml:"player_speed"`
	EnemyCount    int     `yaml:"enemy_count"`
	EnemyMinSpeed float64 `yaml:"enemy_min_speed"`
	EnemyMaxSpeed float64 `yaml:"enemy_max_speed"`
}

// MazeEscapeConfig defines scoring for the maze.
type MazeEscapeConfig struct {
	Par int `yaml:"par"` // moves budget; fewer moves score higher
}

// GuessColorConfig defines round parameters.
type GuessColorConfig struct {
	Options int `yaml:"options"`
	Lives   int `yaml:"lives"`
}

// Validate checks cross-field constraints and fills zero values that have
// an obvious default.
func (c *PortalConfig) Validate() error {
	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = DriverSQLite
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.DSN == "" {
		return fmt.Errorf("config: storage.dsn is required for the %s driver", DriverPostgres)
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.Path == "" {
		c.Storage.Path = "~/.arcade/portal.db"
	}
	if c.Leaderboard.TopN <= 0 {
		c.Leaderboard.TopN = 10
	}
	if c.Games.Snake.StepDelay <= 0 {
		c.Games.Snake.StepDelay = 150 * time.Millisecond
	}
	return nil
}

var (
	gamesMu sync.RWMutex
	games   = DefaultGamesConfig()
)

// SetGames installs the tuning games read on Reset.
func SetGames(g GamesConfig) {
	gamesMu.Lock()
	defer gamesMu.Unlock()
	games = g
}

// Games returns the installed game tuning.
func Games() GamesConfig {
	gamesMu.RLock()
	defer gamesMu.RUnlock()
	return games
}
