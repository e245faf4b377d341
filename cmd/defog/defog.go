package main

import(
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/dpearson/defog/pkg/dcp"
	"github.com/dpearson/defog/pkg/hfmetric"
)

var(
	fVerbosity int
	fConfig string
	fMapWidth int
	fTransmissionFloor float64
	fBrightFraction float64
	fThreshold float64
	fWorkers int
	fExactTopK bool
	fDumpGrids bool
)

func init() {
	defaults := dcp.NewConfig()

	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfig, "config", "", "YAML config file to load before applying flags")
	flag.IntVar(&fMapWidth, "mapwidth", defaults.MapWidth, "width of the sliding window used for the transmission map")
	flag.Float64Var(&fTransmissionFloor, "tmin", defaults.TransmissionFloor, "floor on per-pixel transmission during recovery")
	flag.Float64Var(&fBrightFraction, "brightfrac", defaults.BrightFraction, "fraction of pixels considered when estimating atmospheric light")
	flag.Float64Var(&fThreshold, "threshold", defaults.Threshold, "DFT real-component cutoff for the high-frequency metric")
	flag.IntVar(&fWorkers, "workers", defaults.Workers, "how many goroutines for the per-pixel passes")
	flag.BoolVar(&fExactTopK, "exacttopk", false, "use exact top-K selection for atmospheric light (default: original first-fit heuristic)")
	flag.BoolVar(&fDumpGrids, "dumpgrids", false, "write annotated visualizations of the transmission map")
}

func loadConfig() dcp.Config {
	cfg := dcp.NewConfig()

	if fConfig != "" {
		contents, err := ioutil.ReadFile(fConfig)
		if err != nil {
			log.Fatalf("config read %s: %v\n", fConfig, err)
		}
		if cfg, err = dcp.NewConfigFromYaml(contents); err != nil {
			log.Fatalf("config parse %s: %v\n", fConfig, err)
		}
		log.Printf("Loaded base configuration from %s\n", fConfig)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return applyFlags(cfg, set)
}

// applyFlags layers command-line values over the base config. Only
// flags the user actually passed are applied, so a YAML config isn't
// clobbered by the defaults of flags that were never mentioned.
func applyFlags(cfg dcp.Config, set map[string]bool) dcp.Config {
	if set["v"]          { cfg.Verbosity = fVerbosity }
	if set["mapwidth"]   { cfg.MapWidth = fMapWidth }
	if set["tmin"]       { cfg.TransmissionFloor = fTransmissionFloor }
	if set["brightfrac"] { cfg.BrightFraction = fBrightFraction }
	if set["threshold"]  { cfg.Threshold = fThreshold }
	if set["workers"]    { cfg.Workers = fWorkers }
	if set["exacttopk"]  { cfg.ExactTopK = fExactTopK }
	if set["dumpgrids"]  { cfg.DumpGrids = fDumpGrids }
	return cfg
}

func main() {
	flag.Parse()
	log.Printf("defog starting\n")

	if flag.NArg() != 1 {
		log.Fatalf("usage: defog [flags] IMAGE_FILE\n")
	}

	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	img, err := dcp.LoadColorImage(cfg, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Number of high-frequency pixels in the original image: %d\n", hfmetric.Count(img, cfg.Threshold))

	d := dcp.NewDefogger(cfg, img)
	if err := d.Run(); err != nil {
		log.Fatal(err)
	}

	if err := dcp.WritePNG(d.TMap.ToScaledGray(255.0), "map.png"); err != nil {
		log.Fatal(err)
	}

	out := d.Out.ToImage()
	fmt.Printf("Number of high-frequency pixels in the defogged image: %d\n", hfmetric.Count(out, cfg.Threshold))

	if err := dcp.WritePNG(out, "out.png"); err != nil {
		log.Fatal(err)
	}
}
