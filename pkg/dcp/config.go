package dcp

import(
	"fmt"
	"log"
	"runtime"

	"gopkg.in/yaml.v2"
)

// Config carries every tunable in the pipeline. The numeric defaults
// are the values the original algorithm was tuned with; they are
// parameters here so they can be adjusted per-image without
// rebuilding.
type Config struct {
	Verbosity         int

	// MapWidth is the full width of the sliding window used when
	// estimating per-pixel transmission. The window is clamped at
	// image borders, so edge pixels see a smaller one.
	MapWidth          int

	// TransmissionFloor bounds the divisor during radiance recovery,
	// so near-zero transmission doesn't amplify a pixel into noise.
	// Empirically tuned; 0.54 maximized the high-frequency metric on
	// the original test set.
	TransmissionFloor float64

	// BrightFraction is the fraction of region pixels kept as
	// atmospheric light candidates. 0.001 is the usual "top 0.1%"
	// from the dark channel prior literature.
	BrightFraction    float64

	// Threshold is the cutoff applied to the DFT real component when
	// counting high-frequency pixels.
	Threshold         float64

	Workers           int

	// ExactTopK switches atmospheric light estimation from the
	// original first-fit bucket heuristic to a true top-K selection.
	ExactTopK         bool

	// DumpGrids writes annotated visualizations of the intermediate
	// grids (normalized + false-color transmission maps).
	DumpGrids         bool
}

func NewConfig() Config {
	return Config{
		MapWidth:          20,
		TransmissionFloor: 0.54,
		BrightFraction:    0.001,
		Threshold:         127,
		Workers:           runtime.NumCPU(),
	}
}

func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate catches the configurations the core refuses to run with,
// before any pixels get touched.
func (c Config)Validate() error {
	if c.MapWidth < 2 {
		return fmt.Errorf("config: MapWidth %d too small, need >= 2", c.MapWidth)
	}
	if c.TransmissionFloor <= 0 {
		return fmt.Errorf("config: TransmissionFloor %f must be > 0", c.TransmissionFloor)
	}
	if c.BrightFraction <= 0 {
		return fmt.Errorf("config: BrightFraction %f must be > 0", c.BrightFraction)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: Workers %d must be >= 1", c.Workers)
	}
	return nil
}
