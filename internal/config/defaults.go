package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/portal.yaml
var defaultPortalYAML []byte

// DefaultPortalConfig returns the built-in configuration.
func DefaultPortalConfig() PortalConfig {
	return PortalConfig{
		LogLevel: "info",
		Storage: StorageConfig{
			Driver:         DriverSQLite,
			Path:           "~/.arcade/portal.db",
			ConnectRetries: 5,
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HTTPAddr:    ":8080",
			IdleTimeout: 30 * time.Minute,
		},
		Leaderboard: LeaderboardConfig{TopN: 10},
		Games:       DefaultGamesConfig(),
	}
}

// DefaultGamesConfig returns the classic tuning of every game.
func DefaultGamesConfig() GamesConfig {
	return GamesConfig{
		Pingpong: PingpongConfig{
			BallRadius:       10,
			BallSpeed:        4,
			PaddleWidthRatio: 0.2,
			PaddleHeight:     10,
			PaddleOffset:     20,
			PaddleSpeed:      6,
		},
		Snake: SnakeConfig{
			GridSize:  20,
			StepDelay: 150 * time.Millisecond,
		},
		FlappyBox: FlappyBoxConfig{
			Gravity:     0.2,
			JumpImpulse: -6,
			BoxX:        50,
			BoxSize:     20,
			PipeWidth:   50,
			PipeGap:     150,
			PipeSpeed:   2,
			PipeSpacing: 200,
		},
		SpaceShooter: SpaceShooterConfig{
			PlayerSpeed:   5,
			BulletSpeed:   7,
			EnemyCount:    5,
			EnemyMinSpeed: 2,
			EnemyMaxSpeed: 4,
		},
		AvoidEnemy: AvoidEnemyConfig{
			PlayerSize:    20,
			PlayerSpeed:   8,
			EnemyCount:    5,
			EnemyMinSpeed: 1,
			EnemyMaxSpeed: 2.5,
		},
		MazeEscape: MazeEscapeConfig{Par: 60},
		GuessColor: GuessColorConfig{Options: 3, Lives: 3},
	}
}
