package config

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		Window: WindowConfig{
			SquareSize: 80,
			Title:      "Chess",
		},
		Storage: StorageConfig{
			DataDir: "chessrules",
		},
		Hints: true,
		Sound: true,
	}
}
