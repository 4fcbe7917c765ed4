// Package detection wires the wrapped object-detection fork's train,
// validation, and export hooks into the host's command table. The fork owns
// its flag syntax and its algorithms; this package only translates parsed
// configurations into the fork's typed option structs.
package detection

import (
	"context"

	"github.com/prunekit/prunekit-host-sdk/dispatch"
	"github.com/prunekit/prunekit-host-sdk/integration"
)

// IntegrationName is the command namespace for this integration.
const IntegrationName = "detection"

// TrainOptions are the fields the fork's training entry point accepts.
type TrainOptions struct {
	Weights   string
	Data      string
	Hyp       string
	Recipe    string
	Project   string
	RunName   string
	Epochs    int
	BatchSize int
	ImageSize int
	Resume    bool
}

// ValOptions are the fields the fork's validation entry point accepts.
type ValOptions struct {
	Weights   string
	Data      string
	Task      string
	Project   string
	RunName   string
	BatchSize int
	ImageSize int
}

// ExportOptions are the fields the fork's ONNX export entry point accepts.
type ExportOptions struct {
	Weights   string
	ImageSize int
	BatchSize int
	OpsetVer  int
	Dynamic   bool
}

// ValONNXOptions are the fields the fork's exported-model validation accepts.
type ValONNXOptions struct {
	Model     string
	Data      string
	BatchSize int
	ImageSize int
}

// Toolkit is the surface the wrapped fork supplies: one parse/run pair per
// action. Parse functions own all flag handling; run functions are opaque.
type Toolkit interface {
	ParseTrain(ctx context.Context, argv []string, defaultProjectDir string) (*integration.Config, error)
	Train(ctx context.Context, opts TrainOptions) (any, error)

	ParseVal(ctx context.Context, argv []string, defaultProjectDir string) (*integration.Config, error)
	Val(ctx context.Context, opts ValOptions) (any, error)

	ParseExport(ctx context.Context, argv []string) (*integration.Config, error)
	Export(ctx context.Context, opts ExportOptions) (any, error)

	ParseValONNX(ctx context.Context, argv []string) (*integration.Config, error)
	ValONNX(ctx context.Context, opts ValONNXOptions) (any, error)
}

// Required config fields per action. The dispatcher refuses to run an
// action whose parsed configuration does not cover these.
var (
	trainParams   = []string{"weights", "data", "hyp", "recipe", "project", "name", "epochs", "batch_size", "imgsz", "resume"}
	valParams     = []string{"weights", "data", "task", "project", "name", "batch_size", "imgsz"}
	exportParams  = []string{"weights", "imgsz", "batch_size", "opset", "dynamic"}
	valONNXParams = []string{"model", "data", "batch_size", "imgsz"}
)

// Commands returns this integration's command table entries. Train and val
// take the default artifact directory hint so run outputs land next to the
// host unless overridden.
func Commands(tk Toolkit) []dispatch.Command {
	return []dispatch.Command{
		{
			Integration:  IntegrationName,
			Action:       "train",
			WantsSaveDir: true,
			Params:       trainParams,
			Parse: func(ctx context.Context, argv []string, hints integration.ParseHints) (*integration.Config, error) {
				return tk.ParseTrain(ctx, argv, hints.SaveDir)
			},
			Run: func(ctx context.Context, cfg *integration.Config) (any, error) {
				opts, err := trainOptions(cfg)
				if err != nil {
					return nil, err
				}
				return tk.Train(ctx, opts)
			},
		},
		{
			Integration:  IntegrationName,
			Action:       "val",
			WantsSaveDir: true,
			Params:       valParams,
			Parse: func(ctx context.Context, argv []string, hints integration.ParseHints) (*integration.Config, error) {
				return tk.ParseVal(ctx, argv, hints.SaveDir)
			},
			Run: func(ctx context.Context, cfg *integration.Config) (any, error) {
				opts, err := valOptions(cfg)
				if err != nil {
					return nil, err
				}
				return tk.Val(ctx, opts)
			},
		},
		{
			Integration: IntegrationName,
			Action:      "export_onnx",
			Params:      exportParams,
			Parse: func(ctx context.Context, argv []string, hints integration.ParseHints) (*integration.Config, error) {
				return tk.ParseExport(ctx, argv)
			},
			Run: func(ctx context.Context, cfg *integration.Config) (any, error) {
				opts, err := exportOptions(cfg)
				if err != nil {
					return nil, err
				}
				return tk.Export(ctx, opts)
			},
		},
		{
			Integration: IntegrationName,
			Action:      "val_onnx",
			Params:      valONNXParams,
			Parse: func(ctx context.Context, argv []string, hints integration.ParseHints) (*integration.Config, error) {
				return tk.ParseValONNX(ctx, argv)
			},
			Run: func(ctx context.Context, cfg *integration.Config) (any, error) {
				opts, err := valONNXOptions(cfg)
				if err != nil {
					return nil, err
				}
				return tk.ValONNX(ctx, opts)
			},
		},
	}
}

// The field-by-field mappings below make the parse/run contract explicit:
// a field the run side needs but the parse side stopped producing fails
// here as a contract violation instead of being silently defaulted.

func trainOptions(cfg *integration.Config) (TrainOptions, error) {
	var opts TrainOptions
	var err error

	if opts.Weights, err = cfg.String("weights"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.Data, err = cfg.String("data"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.Hyp, err = cfg.String("hyp"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.Recipe, err = cfg.String("recipe"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.Project, err = cfg.String("project"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.RunName, err = cfg.String("name"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.Epochs, err = cfg.Int("epochs"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.BatchSize, err = cfg.Int("batch_size"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.ImageSize, err = cfg.Int("imgsz"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	if opts.Resume, err = cfg.Bool("resume"); err != nil {
		return TrainOptions{}, contractErr("train", err)
	}
	return opts, nil
}

func valOptions(cfg *integration.Config) (ValOptions, error) {
	var opts ValOptions
	var err error

	if opts.Weights, err = cfg.String("weights"); err != nil {
		return ValOptions{}, contractErr("val", err)
	}
	if opts.Data, err = cfg.String("data"); err != nil {
		return ValOptions{}, contractErr("val", err)
	}
	if opts.Task, err = cfg.String("task"); err != nil {
		return ValOptions{}, contractErr("val", err)
	}
	if opts.Project, err = cfg.String("project"); err != nil {
		return ValOptions{}, contractErr("val", err)
	}
	if opts.RunName, err = cfg.String("name"); err != nil {
		return ValOptions{}, contractErr("val", err)
	}
	if opts.BatchSize, err = cfg.Int("batch_size"); err != nil {
		return ValOptions{}, contractErr("val", err)
	}
	if opts.ImageSize, err = cfg.Int("imgsz"); err != nil {
		return ValOptions{}, contractErr("val", err)
	}
	return opts, nil
}

func exportOptions(cfg *integration.Config) (ExportOptions, error) {
	var opts ExportOptions
	var err error

	if opts.Weights, err = cfg.String("weights"); err != nil {
		return ExportOptions{}, contractErr("export_onnx", err)
	}
	if opts.ImageSize, err = cfg.Int("imgsz"); err != nil {
		return ExportOptions{}, contractErr("export_onnx", err)
	}
	if opts.BatchSize, err = cfg.Int("batch_size"); err != nil {
		return ExportOptions{}, contractErr("export_onnx", err)
	}
	if opts.OpsetVer, err = cfg.Int("opset"); err != nil {
		return ExportOptions{}, contractErr("export_onnx", err)
	}
	if opts.Dynamic, err = cfg.Bool("dynamic"); err != nil {
		return ExportOptions{}, contractErr("export_onnx", err)
	}
	return opts, nil
}

func valONNXOptions(cfg *integration.Config) (ValONNXOptions, error) {
	var opts ValONNXOptions
	var err error

	if opts.Model, err = cfg.String("model"); err != nil {
		return ValONNXOptions{}, contractErr("val_onnx", err)
	}
	if opts.Data, err = cfg.String("data"); err != nil {
		return ValONNXOptions{}, contractErr("val_onnx", err)
	}
	if opts.BatchSize, err = cfg.Int("batch_size"); err != nil {
		return ValONNXOptions{}, contractErr("val_onnx", err)
	}
	if opts.ImageSize, err = cfg.Int("imgsz"); err != nil {
		return ValONNXOptions{}, contractErr("val_onnx", err)
	}
	return opts, nil
}

func contractErr(action string, err error) error {
	return &dispatch.ContractError{
		Command: IntegrationName + "." + action,
		Reason:  err.Error(),
	}
}
