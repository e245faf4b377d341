package dcp

import(
	"fmt"
	"image"
	"log"

	"github.com/dpearson/defog/pkg/fgrid"
)

// Defogger holds the input image and everything derived from it as
// the pipeline runs: grayscale, atmospheric light, transmission map,
// and finally the restored image.
type Defogger struct {
	Config

	Img   fgrid.RGBGrid   // the decoded 3-channel input
	Gray  fgrid.FloatGrid // luma version of Img

	Light float64         // atmospheric light intensity, computed once
	TMap  fgrid.FloatGrid // per-pixel transmission estimates
	Out   fgrid.RGBGrid   // recovered radiance
}

func NewDefogger(cfg Config, img image.Image) *Defogger {
	rg := fgrid.NewRGBGridFromImage(img)
	return &Defogger{
		Config: cfg,
		Img:    rg,
		Gray:   rg.Gray(),
	}
}

// Run executes the whole pipeline in order. The atmospheric light
// must be fully computed before any transmission work starts; the
// two grid passes then parallelize internally.
func (d *Defogger)Run() error {
	if err := d.Config.Validate(); err != nil {
		return err
	}

	if err := d.EstimateLight(); err != nil {
		return err
	}
	if err := d.BuildTransmissionMap(); err != nil {
		return err
	}
	d.Recover()

	return nil
}

func (d *Defogger)EstimateLight() error {
	light, err := EstimateLight(d.Config, &d.Img, &d.Gray, d.Img.Bounds())
	if err != nil {
		return fmt.Errorf("defog: %v", err)
	}
	d.Light = light

	if d.Verbosity > 0 {
		log.Printf("Atmospheric light intensity: %f\n", d.Light)
	}
	return nil
}

func (d *Defogger)BuildTransmissionMap() error {
	tmap, err := BuildTransmissionMap(d.Config, &d.Img, d.Light)
	if err != nil {
		return fmt.Errorf("defog: %v", err)
	}
	d.TMap = tmap

	if d.Verbosity > 0 {
		p01, p50, p99 := d.TMap.Quantiles(255.0)
		log.Printf("Transmission map %s, t*255 quantiles p01=%d p50=%d p99=%d\n", d.TMap.Stats(), p01, p50, p99)
	}
	if d.DumpGrids {
		d.TMap.ToImg("transmission (normalized)", "map-norm.png")
		d.TMap.ToFalseColorImg("transmission (false color)", "map-heat.png")
	}
	return nil
}

func (d *Defogger)Recover() {
	d.Out = RecoverRadiance(d.Config, &d.Img, &d.TMap, d.Light)
}
