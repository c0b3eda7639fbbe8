package pending

type Config struct {
	Path string `yaml:"path"`
}
