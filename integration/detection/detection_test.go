package detection_test

import (
	"context"
	"testing"

	"github.com/prunekit/prunekit-host-sdk/dispatch"
	"github.com/prunekit/prunekit-host-sdk/integration"
	"github.com/prunekit/prunekit-host-sdk/integration/detection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToolkit records what the fork would have been called with.
type fakeToolkit struct {
	trainFields map[string]any
	projectDir  string

	trainOpts  *detection.TrainOptions
	exportOpts *detection.ExportOptions
}

func (f *fakeToolkit) ParseTrain(ctx context.Context, argv []string, defaultProjectDir string) (*integration.Config, error) {
	f.projectDir = defaultProjectDir
	return integration.NewConfig(f.trainFields), nil
}

func (f *fakeToolkit) Train(ctx context.Context, opts detection.TrainOptions) (any, error) {
	f.trainOpts = &opts
	return "weights.pt", nil
}

func (f *fakeToolkit) ParseVal(ctx context.Context, argv []string, defaultProjectDir string) (*integration.Config, error) {
	return integration.NewConfig(map[string]any{
		"weights": "best.pt", "data": "coco.yaml", "task": "val",
		"project": defaultProjectDir, "name": "exp", "batch_size": 32, "imgsz": 640,
	}), nil
}

func (f *fakeToolkit) Val(ctx context.Context, opts detection.ValOptions) (any, error) {
	return map[string]float64{"mAP50": 0.54}, nil
}

func (f *fakeToolkit) ParseExport(ctx context.Context, argv []string) (*integration.Config, error) {
	return integration.NewConfig(map[string]any{
		"weights": "best.pt", "imgsz": 640, "batch_size": 1, "opset": 13, "dynamic": true,
	}), nil
}

func (f *fakeToolkit) Export(ctx context.Context, opts detection.ExportOptions) (any, error) {
	f.exportOpts = &opts
	return "best.onnx", nil
}

func (f *fakeToolkit) ParseValONNX(ctx context.Context, argv []string) (*integration.Config, error) {
	return integration.NewConfig(map[string]any{
		"model": "best.onnx", "data": "coco.yaml", "batch_size": 1, "imgsz": 640,
	}), nil
}

func (f *fakeToolkit) ValONNX(ctx context.Context, opts detection.ValONNXOptions) (any, error) {
	return nil, nil
}

func goodTrainFields() map[string]any {
	return map[string]any{
		"weights": "yolo.pt", "data": "coco.yaml", "hyp": "hyp.yaml",
		"recipe": "prune90.yaml", "project": "/runs", "name": "exp",
		"epochs": 300, "batch_size": 16, "imgsz": 640, "resume": false,
	}
}

func newDispatcher(tk detection.Toolkit, opts ...dispatch.Option) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(dispatch.MustRegistry(detection.Commands(tk)...), opts...)
}

func TestTrainForwardsTypedOptions(t *testing.T) {
	t.Parallel()

	tk := &fakeToolkit{trainFields: goodTrainFields()}
	d := newDispatcher(tk, dispatch.WithSaveDir("/opt/prunekit"))

	result, err := d.Invoke(context.Background(), "detection.train", []string{"--epochs", "300"})
	require.NoError(t, err)
	assert.Equal(t, "weights.pt", result)

	// The save-dir hint reached the fork's parse function.
	assert.Equal(t, "/opt/prunekit", tk.projectDir)

	require.NotNil(t, tk.trainOpts)
	assert.Equal(t, detection.TrainOptions{
		Weights: "yolo.pt", Data: "coco.yaml", Hyp: "hyp.yaml",
		Recipe: "prune90.yaml", Project: "/runs", RunName: "exp",
		Epochs: 300, BatchSize: 16, ImageSize: 640, Resume: false,
	}, *tk.trainOpts)
}

func TestTrainMissingFieldIsContractViolation(t *testing.T) {
	t.Parallel()

	fields := goodTrainFields()
	delete(fields, "recipe")
	tk := &fakeToolkit{trainFields: fields}
	d := newDispatcher(tk)

	_, err := d.Invoke(context.Background(), "detection.train", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dispatch.ErrContract)
	assert.Nil(t, tk.trainOpts, "run must not be reached")
	assert.Equal(t, dispatch.ExitContract, dispatch.ExitStatus(err))
}

func TestTrainWrongShapeIsContractViolation(t *testing.T) {
	t.Parallel()

	fields := goodTrainFields()
	fields["epochs"] = "three hundred"
	tk := &fakeToolkit{trainFields: fields}
	d := newDispatcher(tk)

	_, err := d.Invoke(context.Background(), "detection.train", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dispatch.ErrContract)

	var contract *dispatch.ContractError
	require.ErrorAs(t, err, &contract)
	assert.Contains(t, contract.Reason, "epochs")
}

func TestAllActionsRegistered(t *testing.T) {
	t.Parallel()

	reg := dispatch.MustRegistry(detection.Commands(&fakeToolkit{})...)
	assert.Equal(t, []string{
		"detection.export_onnx",
		"detection.train",
		"detection.val",
		"detection.val_onnx",
	}, reg.Names())
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	tk := &fakeToolkit{}
	d := newDispatcher(tk)

	result, err := d.Invoke(context.Background(), "detection.export_onnx", nil)
	require.NoError(t, err)
	assert.Equal(t, "best.onnx", result)
	require.NotNil(t, tk.exportOpts)
	assert.True(t, tk.exportOpts.Dynamic)
	assert.Equal(t, 13, tk.exportOpts.OpsetVer)
}
