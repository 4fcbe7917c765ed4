package extras

import (
	prunekit "github.com/prunekit/prunekit-host-sdk"
)

// Capability names served by Builtin.
const (
	CapabilityTorch       = "torch"
	CapabilityTorchvision = "torchvision"
	CapabilityTFV1        = "tf_v1"
	CapabilityTFV1GPU     = "tf_v1_gpu"
	CapabilityTFKeras     = "tf_keras"
	CapabilityONNXRuntime = "onnxruntime"
	CapabilityAccelerator = "accelerator"
	CapabilityDev         = "dev"
)

var coreSpecs = []string{
	"pyyaml >=5.0.0",
	"numpy >=1.0.0",
	"onnx >=1.5.0, <=1.10.1",
	"pandas >=0.25.0",
	"packaging >=20.0",
	"psutil >=5.0.0",
	"pydantic >=1.5.0",
	"requests >=2.0.0",
	"scipy >=1.0.0",
	"tqdm >=4.0.0",
	"toposort >=1.0",
	"protobuf >=3.12.2, <4",
}

var torchSpecs = []string{
	"torch >=1.1.0, <=1.9.1",
	"tensorboard >=1.0",
	"gputils",
}

var tfV1Specs = []string{
	"tensorflow <2.0.0",
	"tensorboard <2.0.0",
	"tf2onnx >=1.0.0, <1.6.0",
}

var tfV1GPUSpecs = []string{
	"tensorflow-gpu <2.0.0",
	"tensorboard <2.0.0",
	"tf2onnx >=1.0.0, <1.6.0",
}

var tfKerasSpecs = []string{
	"tensorflow ~2.2.0",
	"keras2onnx >=1.0.0",
}

var devSpecs = []string{
	"black =21.5.2",
	"flake8 =3.9.2",
	"isort =5.8.0",
	"wheel >=0.36.2",
	"pytest ~6.2.0",
	"pytest-mock ~3.6.0",
	"flaky ~3.7.0",
}

func mustParseAll(specs []string) []Requirement {
	reqs := make([]Requirement, 0, len(specs))
	for _, s := range specs {
		reqs = append(reqs, MustRequirement(s))
	}
	return reqs
}

// Builtin returns the toolkit's own capability table: the core requirement
// list (always installed, led by the modelzoo companion pinned to the
// current major.minor line) plus one bundle per supported integration.
func Builtin() *Registry {
	core := append(
		[]Requirement{MustRequirement(prunekit.CompanionConstraint("modelzoo", prunekit.IsRelease))},
		mustParseAll(coreSpecs)...,
	)

	r := NewRegistry(core...)
	r.MustRegister(CapabilityTorch, mustParseAll(torchSpecs)...)
	r.MustRegister(CapabilityTorchvision, append(
		mustParseAll(torchSpecs),
		MustRequirement("torchvision >=0.3.0, <=0.10.1"),
	)...)
	r.MustRegister(CapabilityTFV1, mustParseAll(tfV1Specs)...)
	r.MustRegister(CapabilityTFV1GPU, mustParseAll(tfV1GPUSpecs)...)
	r.MustRegister(CapabilityTFKeras, mustParseAll(tfKerasSpecs)...)
	r.MustRegister(CapabilityONNXRuntime, MustRequirement("onnxruntime >=1.0.0"))
	r.MustRegister(CapabilityAccelerator,
		MustRequirement(prunekit.CompanionConstraint("fastinfer", prunekit.IsRelease)))
	r.MustRegister(CapabilityDev, mustParseAll(devSpecs)...)
	return r
}
