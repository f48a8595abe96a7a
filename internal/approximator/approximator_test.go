package approximator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eodole/BayesFlow/internal/adapter"
	"github.com/eodole/BayesFlow/internal/backend/cpu"
	"github.com/eodole/BayesFlow/internal/network"
	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/simulator"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// passthrough is a classifier that forwards its input unchanged, so tests
// can pin the exact logits the projector sees.
type passthrough struct{}

func (passthrough) Kind() string                { return "passthrough" }
func (passthrough) Config() map[string]any      { return map[string]any{} }
func (passthrough) Parameters() []*network.Parameter { return nil }
func (passthrough) Forward(b tensor.Backend, x *tensor.RawTensor) *tensor.RawTensor {
	return x
}
func (passthrough) Backward(b tensor.Backend, grad *tensor.RawTensor) *tensor.RawTensor {
	return grad
}

func tensorOf(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	x, err := tensor.FromFloat32(data, shape)
	require.NoError(t, err)
	return x
}

// labeledSimulator emits observables equal to the model id so batches are
// linearly separable.
func labeledSimulator(value float32) simulator.Simulator {
	return simulator.Func(func(batchSize int) (map[string]*tensor.RawTensor, error) {
		obs := tensor.Full(tensor.Shape{batchSize, 2}, tensor.Float32, float64(value))
		return map[string]*tensor.RawTensor{"observables": obs}, nil
	})
}

func TestNewModelComparisonValidation(t *testing.T) {
	_, err := NewModelComparison(nil, 1, network.NewMLP(4), nil)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	_, err = NewModelComparison(nil, 2, nil, nil)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestBuildAdapterPrecondition(t *testing.T) {
	_, err := BuildAdapter(nil, nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestBuildAdapterPipeline(t *testing.T) {
	b := cpu.New()
	a, err := BuildAdapter([]string{"alpha", "beta"}, []string{"obs"}, "sim_idx")
	require.NoError(t, err)

	out, err := a.Forward(b, map[string]any{
		"alpha":   tensorOf(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}),
		"beta":    tensorOf(t, []float32{5, 6}, tensor.Shape{2, 1}),
		"obs":     tensorOf(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}),
		"sim_idx": tensorOf(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2}),
		"ignored": tensorOf(t, []float32{9, 9}, tensor.Shape{2, 1}),
	})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, tensor.Shape{2, 3}, out[KeyClassifierConditions].Shape())
	assert.Equal(t, tensor.Shape{2, 3, 1}, out[KeySummaryVariables].Shape())
	assert.Equal(t, tensor.Shape{2, 2}, out[KeyModelIndices].Shape())

	// Model indices pass through standardization untouched.
	assert.Equal(t, []float32{1, 0, 0, 1}, out[KeyModelIndices].AsFloat32())
}

func TestComputeMetricsMatchesCrossEntropy(t *testing.T) {
	b := cpu.New()
	a, err := NewModelComparison(b, 2, passthrough{}, nil)
	require.NoError(t, err)

	logits := tensorOf(t, []float32{2, -1, -1, 2}, tensor.Shape{2, 2})
	indices := tensorOf(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2})
	data := map[string]*tensor.RawTensor{
		KeyClassifierConditions: logits,
		KeyModelIndices:         indices,
	}

	// Pin the projector to the identity so the classifier output is the
	// logits tensor itself.
	require.NoError(t, a.Build(map[string]tensor.Shape{
		KeyClassifierConditions: {2, 2},
		KeyModelIndices:         {2, 2},
	}))
	copy(a.projector.Parameters()[0].Tensor().AsFloat32(), []float32{1, 0, 0, 1})
	copy(a.projector.Parameters()[1].Tensor().AsFloat32(), []float32{0, 0})

	metrics, err := a.ComputeMetrics(data, network.StageTraining)
	require.NoError(t, err)

	expected := network.CategoricalCrossEntropyMean(b, indices, logits).Item()
	assert.InDelta(t, expected, metrics["loss"].Item(), 1e-6)
	assert.InDelta(t, expected, metrics["loss/classifier_loss"].Item(), 1e-6)
}

func TestComputeMetricsNamespacing(t *testing.T) {
	b := cpu.New()
	a, err := NewModelComparison(b, 2, network.NewMLP(8), network.NewDeepSet(8, 4))
	require.NoError(t, err)
	a.Compile([]network.Metric{network.Accuracy{}}, nil)

	data := map[string]*tensor.RawTensor{
		KeySummaryVariables: tensorOf(t, make([]float32, 4*3*2), tensor.Shape{4, 3, 2}),
		KeyModelIndices:     tensorOf(t, []float32{1, 0, 0, 1, 1, 0, 0, 1}, tensor.Shape{4, 2}),
	}

	metrics, err := a.ComputeMetrics(data, network.StageValidation)
	require.NoError(t, err)

	assert.Contains(t, metrics, "loss")
	assert.Contains(t, metrics, "loss/classifier_loss")
	assert.Contains(t, metrics, "accuracy/classifier_accuracy")
	assert.NotContains(t, metrics, "outputs")

	// DeepSet has no loss of its own, so the total is the classifier loss.
	assert.InDelta(t, metrics["loss/classifier_loss"].Item(), metrics["loss"].Item(), 1e-6)
}

// recordingMetric captures the outputs tensor it is handed, so tests can
// pin what classifier metrics actually see.
type recordingMetric struct {
	seen *tensor.RawTensor
}

func (*recordingMetric) Name() string { return "recorded" }
func (m *recordingMetric) Compute(b tensor.Backend, targets, outputs *tensor.RawTensor) *tensor.RawTensor {
	m.seen = outputs
	return tensor.Scalar(tensor.Float32, 0)
}

func TestClassifierMetricsReceiveHardPredictions(t *testing.T) {
	b := cpu.New()
	a, err := NewModelComparison(b, 2, passthrough{}, nil)
	require.NoError(t, err)
	spy := &recordingMetric{}
	a.Compile([]network.Metric{spy}, nil)

	data := map[string]*tensor.RawTensor{
		KeyClassifierConditions: tensorOf(t, []float32{2, -1, -1, 2}, tensor.Shape{2, 2}),
		KeyModelIndices:         tensorOf(t, []float32{1, 0, 0, 1}, tensor.Shape{2, 2}),
	}
	_, err = a.ComputeMetrics(data, network.StageValidation)
	require.NoError(t, err)

	// Metrics see per-sample class indices, not the [batch, numModels] logits.
	require.NotNil(t, spy.seen)
	assert.Equal(t, tensor.Shape{2}, spy.seen.Shape())
}

func TestTrainingStageSkipsSampleMetrics(t *testing.T) {
	b := cpu.New()
	a, err := NewModelComparison(b, 2, network.NewMLP(8), nil)
	require.NoError(t, err)
	a.Compile([]network.Metric{network.Accuracy{}}, nil)

	data := map[string]*tensor.RawTensor{
		KeyClassifierConditions: tensorOf(t, make([]float32, 4*3), tensor.Shape{4, 3}),
		KeyModelIndices:         tensorOf(t, []float32{1, 0, 0, 1, 1, 0, 0, 1}, tensor.Shape{4, 2}),
	}

	metrics, err := a.ComputeMetrics(data, network.StageTraining)
	require.NoError(t, err)
	assert.NotContains(t, metrics, "accuracy/classifier_accuracy")
}

func TestComputeMetricsRequiresConditioning(t *testing.T) {
	b := cpu.New()
	a, err := NewModelComparison(b, 2, network.NewMLP(8), nil)
	require.NoError(t, err)

	_, err = a.ComputeMetrics(map[string]*tensor.RawTensor{
		KeyModelIndices: tensorOf(t, []float32{1, 0}, tensor.Shape{1, 2}),
	}, network.StageTraining)
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestCompileWarnsButContinuesWithoutSummary(t *testing.T) {
	a, err := NewModelComparison(nil, 2, network.NewMLP(8), nil)
	require.NoError(t, err)

	// Must not panic or error; only a warning is logged.
	a.Compile(nil, []network.Metric{network.Accuracy{}})
}

func TestBuildForcesParameterCreation(t *testing.T) {
	a, err := NewModelComparison(nil, 2, network.NewMLP(8), network.NewDeepSet(8, 4))
	require.NoError(t, err)
	assert.Empty(t, a.Parameters())

	require.NoError(t, a.Build(map[string]tensor.Shape{
		KeySummaryVariables: {2, 3, 2},
		KeyModelIndices:     {2, 2},
	}))
	assert.NotEmpty(t, a.Parameters())
}

func TestFitSourceValidation(t *testing.T) {
	a, err := NewModelComparison(nil, 2, network.NewMLP(8), nil)
	require.NoError(t, err)

	ds, err := NewOnlineDataset(cpu.New(), labeledSimulator(0), mustAdapter(t), 4)
	require.NoError(t, err)

	_, err = a.Fit(FitOptions{Dataset: ds, Simulator: labeledSimulator(0)})
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	_, err = a.Fit(FitOptions{})
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	_, err = a.Fit(FitOptions{
		Simulator:  labeledSimulator(0),
		Simulators: []simulator.Simulator{labeledSimulator(0)},
	})
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func mustAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()
	a, err := BuildAdapter([]string{"observables"}, nil, "")
	require.NoError(t, err)
	return a
}

func TestFitLearnsToSeparateModels(t *testing.T) {
	b := cpu.New()
	a, err := NewModelComparison(b, 2, network.NewMLP(16, 8), network.NewDeepSet(16, 8))
	require.NoError(t, err)

	sims := []simulator.Simulator{labeledSimulator(-1), labeledSimulator(1)}
	history, err := a.Fit(FitOptions{
		Simulators:       sims,
		SummaryVariables: []string{"observables"},
		Epochs:           2,
		StepsPerEpoch:    40,
		BatchSize:        32,
		LearningRate:     0.01,
	})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.NotNil(t, a.Adapter())
	assert.Less(t, history[1]["loss"], history[0]["loss"])
	assert.False(t, math.IsNaN(history[1]["loss"]))
}

func TestFitWithClassifierConditionsOnly(t *testing.T) {
	a, err := NewModelComparison(nil, 2, network.NewMLP(8), nil)
	require.NoError(t, err)

	history, err := a.Fit(FitOptions{
		Simulators:           []simulator.Simulator{labeledSimulator(0), labeledSimulator(1)},
		ClassifierConditions: []string{"observables"},
		Epochs:               1,
		StepsPerEpoch:        5,
		BatchSize:            8,
	})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, math.IsNaN(history[0]["loss"]))
}

func TestConfigRoundTrip(t *testing.T) {
	a, err := NewModelComparison(nil, 3, network.NewMLP(16, 8), network.NewDeepSet(8, 4))
	require.NoError(t, err)
	built, err := BuildAdapter(nil, []string{"observables"}, "")
	require.NoError(t, err)
	a.adapter = built

	payload, err := serialization.Serialize(a)
	require.NoError(t, err)

	obj, err := serialization.Deserialize(payload)
	require.NoError(t, err)
	restored, ok := obj.(*ModelComparisonApproximator)
	require.True(t, ok)

	assert.Equal(t, 3, restored.NumModels())
	require.NotNil(t, restored.Adapter())
	assert.Equal(t, built.Len(), restored.Adapter().Len())
	_, isMLP := restored.classifier.(*network.MLP)
	assert.True(t, isMLP)
	_, isDeepSet := restored.summary.(*network.DeepSet)
	assert.True(t, isDeepSet)
}
