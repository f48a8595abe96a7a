package approximator

import (
	"fmt"

	"github.com/eodole/BayesFlow/internal/adapter"
	"github.com/eodole/BayesFlow/internal/backend/cpu"
	"github.com/eodole/BayesFlow/internal/logging"
	"github.com/eodole/BayesFlow/internal/network"
	"github.com/eodole/BayesFlow/internal/optim"
	"github.com/eodole/BayesFlow/internal/serialization"
	"github.com/eodole/BayesFlow/internal/simulator"
	"github.com/eodole/BayesFlow/internal/tensor"
)

// Canonical variable names the approximator consumes after adaptation.
const (
	KeyClassifierConditions = "classifier_conditions"
	KeySummaryVariables     = "summary_variables"
	KeyModelIndices         = "model_indices"
)

// ModelComparisonApproximator trains a classifier (optionally fed by a
// summary network) to discriminate among candidate simulator models.
//
// Per metrics pass it routes summary_variables through the summary network,
// combines the resulting representation with classifier_conditions, runs the
// classifier, and projects to one logit per candidate model. The classifier
// loss is the mean categorical cross-entropy of those logits against
// model_indices; the summary network may contribute its own loss.
type ModelComparisonApproximator struct {
	backend   tensor.Backend
	numModels int

	classifier network.Classifier
	summary    network.Summary // optional
	projector  *network.Dense  // logits head, built lazily

	adapter *adapter.Adapter // attached by Fit

	classifierMetrics []network.Metric
	summaryMetrics    []network.Metric
}

// NewModelComparison creates an approximator for numModels candidate models.
// The classifier is required; summary may be nil when conditions are fed
// directly. A nil backend defaults to the CPU backend.
func NewModelComparison(b tensor.Backend, numModels int, classifier network.Classifier, summary network.Summary) (*ModelComparisonApproximator, error) {
	if numModels < 2 {
		return nil, fmt.Errorf("model comparison: need at least 2 models, got %d: %w",
			numModels, tensor.ErrInvalidArgument)
	}
	if classifier == nil {
		return nil, fmt.Errorf("model comparison: classifier network required: %w", tensor.ErrInvalidArgument)
	}
	if b == nil {
		b = cpu.New()
	}
	return &ModelComparisonApproximator{
		backend:    b,
		numModels:  numModels,
		classifier: classifier,
		summary:    summary,
		projector:  network.NewDense("logits", numModels),
	}, nil
}

// NumModels returns the number of candidate models.
func (a *ModelComparisonApproximator) NumModels() int { return a.numModels }

// Adapter returns the pipeline attached by the last Fit, or nil.
func (a *ModelComparisonApproximator) Adapter() *adapter.Adapter { return a.adapter }

// Parameters returns all trainable parameters of the built sub-networks.
func (a *ModelComparisonApproximator) Parameters() []*network.Parameter {
	params := append([]*network.Parameter(nil), a.classifier.Parameters()...)
	params = append(params, a.projector.Parameters()...)
	if a.summary != nil {
		params = append(params, a.summary.Parameters()...)
	}
	return params
}

// Compile attaches sample-based metrics to the sub-networks. Supplying
// summary metrics without a summary network is reported as a warning, not an
// error, matching the convention that likely-mistaken but harmless
// configuration does not stop execution.
func (a *ModelComparisonApproximator) Compile(classifierMetrics, summaryMetrics []network.Metric) {
	a.classifierMetrics = classifierMetrics
	a.summaryMetrics = summaryMetrics
	if len(summaryMetrics) > 0 && a.summary == nil {
		logging.Warn("summary metrics provided but no summary network is configured, they will be ignored")
	}
}

// conditions combines classifier_conditions with the summary representation.
// At least one source must be present.
func (a *ModelComparisonApproximator) conditions(cc, summaryOutputs *tensor.RawTensor) (*tensor.RawTensor, error) {
	switch {
	case cc == nil && summaryOutputs == nil:
		return nil, fmt.Errorf("model comparison: at least one of %s or %s is required: %w",
			KeyClassifierConditions, KeySummaryVariables, tensor.ErrInvalidArgument)
	case cc == nil:
		return summaryOutputs, nil
	case summaryOutputs == nil:
		return cc, nil
	default:
		return a.backend.Cat([]*tensor.RawTensor{cc, summaryOutputs}, -1), nil
	}
}

// ComputeMetrics runs one full metrics pass without touching any weights.
//
// The returned map always contains "loss" (classifier loss plus summary loss
// when present). Per-component entries are namespaced as
// "<key>/classifier_<key>" and "<key>/summary_<key>", so merged keys cannot
// collide. Sample-based metrics are evaluated only when stage is not
// training.
func (a *ModelComparisonApproximator) ComputeMetrics(data map[string]*tensor.RawTensor, stage network.Stage) (map[string]*tensor.RawTensor, error) {
	b := a.backend

	var summaryOutputs *tensor.RawTensor
	summaryMetrics := map[string]*tensor.RawTensor{}
	if a.summary != nil {
		sv, ok := data[KeySummaryVariables]
		if !ok {
			return nil, fmt.Errorf("model comparison: summary network configured but %q is missing: %w",
				KeySummaryVariables, tensor.ErrInvalidArgument)
		}
		metrics, err := a.summary.ComputeMetrics(b, sv, stage)
		if err != nil {
			return nil, err
		}
		summaryOutputs = metrics["outputs"]
		delete(metrics, "outputs")
		summaryMetrics = metrics
		if stage != network.StageTraining {
			// Summary sample metrics are distributional: they see only the
			// representation, so both arguments receive it.
			for _, metric := range a.summaryMetrics {
				summaryMetrics[metric.Name()] = metric.Compute(b, summaryOutputs, summaryOutputs)
			}
		}
	}

	conditions, err := a.conditions(data[KeyClassifierConditions], summaryOutputs)
	if err != nil {
		return nil, err
	}
	modelIndices, ok := data[KeyModelIndices]
	if !ok {
		return nil, fmt.Errorf("model comparison: %q is missing: %w", KeyModelIndices, tensor.ErrInvalidArgument)
	}

	logits := a.projector.Forward(b, a.classifier.Forward(b, conditions))
	classifierLoss := network.CategoricalCrossEntropyMean(b, modelIndices, logits)

	classifierMetrics := map[string]*tensor.RawTensor{"loss": classifierLoss}
	if stage != network.StageTraining && len(a.classifierMetrics) > 0 {
		// Sample metrics see hard class predictions, not raw logits.
		predictions := b.Argmax(logits, -1)
		for _, metric := range a.classifierMetrics {
			classifierMetrics[metric.Name()] = metric.Compute(b, modelIndices, predictions)
		}
	}

	total := classifierLoss
	if summaryLoss, ok := summaryMetrics["loss"]; ok {
		total = b.Add(total, summaryLoss)
	}

	out := map[string]*tensor.RawTensor{"loss": total}
	for key, value := range classifierMetrics {
		out[key+"/classifier_"+key] = value
	}
	for key, value := range summaryMetrics {
		out[key+"/summary_"+key] = value
	}
	return out, nil
}

// PredictLogits runs the forward pass and returns the raw model logits.
func (a *ModelComparisonApproximator) PredictLogits(data map[string]*tensor.RawTensor) (*tensor.RawTensor, error) {
	b := a.backend
	var summaryOutputs *tensor.RawTensor
	if a.summary != nil {
		sv, ok := data[KeySummaryVariables]
		if !ok {
			return nil, fmt.Errorf("model comparison: summary network configured but %q is missing: %w",
				KeySummaryVariables, tensor.ErrInvalidArgument)
		}
		summaryOutputs = a.summary.Forward(b, sv)
	}
	conditions, err := a.conditions(data[KeyClassifierConditions], summaryOutputs)
	if err != nil {
		return nil, err
	}
	return a.projector.Forward(b, a.classifier.Forward(b, conditions)), nil
}

// trainStep runs forward and backward over one batch and returns the total
// loss. Gradients are left accumulated on the parameters.
func (a *ModelComparisonApproximator) trainStep(batch map[string]*tensor.RawTensor) (float64, error) {
	b := a.backend

	var summaryOutputs *tensor.RawTensor
	if a.summary != nil {
		sv, ok := batch[KeySummaryVariables]
		if !ok {
			return 0, fmt.Errorf("model comparison: summary network configured but %q is missing: %w",
				KeySummaryVariables, tensor.ErrInvalidArgument)
		}
		summaryOutputs = a.summary.Forward(b, sv)
	}
	cc := batch[KeyClassifierConditions]
	conditions, err := a.conditions(cc, summaryOutputs)
	if err != nil {
		return 0, err
	}
	modelIndices, ok := batch[KeyModelIndices]
	if !ok {
		return 0, fmt.Errorf("model comparison: %q is missing: %w", KeyModelIndices, tensor.ErrInvalidArgument)
	}

	logits := a.projector.Forward(b, a.classifier.Forward(b, conditions))
	loss := network.CategoricalCrossEntropyMean(b, modelIndices, logits).Item()

	grad := network.CrossEntropyBackward(b, modelIndices, logits)
	grad = a.projector.Backward(b, grad)
	grad = a.classifier.Backward(b, grad)
	if a.summary != nil {
		summaryGrad := grad
		if cc != nil {
			// Conditions were [classifier_conditions | summary outputs];
			// the summary gradient is the trailing column block.
			width := cc.Shape()[len(cc.Shape())-1]
			dim := summaryOutputs.Shape()[1]
			summaryGrad = b.Slice(grad, 1, width, dim)
		}
		a.summary.Backward(b, summaryGrad)
	}
	return loss, nil
}

// Fit trains the approximator.
//
// Exactly one of opts.Dataset, opts.Simulator, or opts.Simulators must be
// set. With a nil opts.Adapter the default pipeline from BuildAdapter is
// attached; a list of simulators is wrapped into a uniform
// ModelComparisonSimulator. Returns per-epoch mean losses.
func (a *ModelComparisonApproximator) Fit(opts FitOptions) (History, error) {
	opts.applyDefaults()
	if err := opts.validateSources(); err != nil {
		return nil, err
	}

	ds := opts.Dataset
	if ds == nil {
		pipeline := opts.Adapter
		if pipeline == nil {
			built, err := BuildAdapter(opts.ClassifierConditions, opts.SummaryVariables, opts.ModelIndexName)
			if err != nil {
				return nil, err
			}
			pipeline = built
		}
		a.adapter = pipeline

		sim := opts.Simulator
		if sim == nil {
			mixed, err := simulator.NewModelComparison(opts.Simulators)
			if err != nil {
				return nil, err
			}
			sim = mixed
		}
		online, err := NewOnlineDataset(a.backend, sim, pipeline, opts.BatchSize)
		if err != nil {
			return nil, err
		}
		ds = online
	}

	var opt optim.Optimizer
	history := make(History, 0, opts.Epochs)
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		var epochLoss float64
		for step := 0; step < opts.StepsPerEpoch; step++ {
			batch, err := ds.NextBatch()
			if err != nil {
				return history, err
			}
			loss, err := a.trainStep(batch)
			if err != nil {
				return history, err
			}
			if opt == nil {
				// Lazily built layers only have parameters after the first
				// forward pass, so the optimizer is created here.
				opt = optim.NewAdam(a.Parameters(), optim.AdamConfig{LR: opts.LearningRate})
			}
			opt.Step()
			opt.ZeroGrad()
			epochLoss += loss
		}
		mean := epochLoss / float64(opts.StepsPerEpoch)
		history = append(history, map[string]float64{"loss": mean})
		logging.Info("epoch %d/%d: loss %.4f", epoch+1, opts.Epochs, mean)
	}
	return history, nil
}

// Build materializes zero-filled tensors of the given shapes and runs one
// metrics pass to force lazy parameter creation. No weights are updated.
func (a *ModelComparisonApproximator) Build(dataShapes map[string]tensor.Shape) error {
	data := make(map[string]*tensor.RawTensor, len(dataShapes))
	for key, shape := range dataShapes {
		data[key] = a.backend.Zeros(shape, tensor.Float32)
	}
	_, err := a.ComputeMetrics(data, network.StageTraining)
	return err
}

// BuildAdapter constructs the default preprocessing pipeline for model
// comparison. At least one of classifierConditions or summaryVariables is
// required. An empty modelIndexName defaults to "model_indices".
//
// The pipeline converts raw values to tensors, casts Float64 down to
// Float32, concatenates the conditioning groups into their canonical keys
// (marking summary variables as sets first), renames the model index,
// restricts the output to the three canonical keys, and standardizes
// everything except the model indices.
func BuildAdapter(classifierConditions, summaryVariables []string, modelIndexName string) (*adapter.Adapter, error) {
	if len(classifierConditions) == 0 && len(summaryVariables) == 0 {
		return nil, fmt.Errorf("build adapter: at least one of classifier conditions or summary variables is required: %w",
			tensor.ErrInvalidArgument)
	}
	if modelIndexName == "" {
		modelIndexName = KeyModelIndices
	}

	a := adapter.New().
		ToArray().
		ConvertDType(tensor.Float64, tensor.Float32)
	if len(classifierConditions) > 0 {
		a = a.Concatenate(classifierConditions, KeyClassifierConditions)
	}
	if len(summaryVariables) > 0 {
		a = a.AsSet(summaryVariables...).Concatenate(summaryVariables, KeySummaryVariables)
	}
	return a.
		Rename(modelIndexName, KeyModelIndices).
		Keep(KeyClassifierConditions, KeySummaryVariables, KeyModelIndices).
		Standardize(KeyModelIndices), nil
}

// Kind implements serialization.Saveable.
func (*ModelComparisonApproximator) Kind() string { return "model_comparison_approximator" }

// Config implements serialization.Saveable.
func (a *ModelComparisonApproximator) Config() map[string]any {
	cfg := map[string]any{
		"num_models": a.numModels,
		"classifier": serialization.Envelope(a.classifier),
	}
	if a.summary != nil {
		cfg["summary"] = serialization.Envelope(a.summary)
	}
	if a.adapter != nil {
		cfg["adapter"] = serialization.Envelope(a.adapter)
	}
	return cfg
}

func init() {
	serialization.Register("model_comparison_approximator", func(config map[string]any) (any, error) {
		numModels := serialization.Int(config["num_models"])

		obj, err := serialization.FromEmbedded(config["classifier"])
		if err != nil {
			return nil, fmt.Errorf("model comparison: classifier: %w", err)
		}
		classifier, ok := obj.(network.Classifier)
		if !ok {
			return nil, fmt.Errorf("model comparison: classifier decodes to %T", obj)
		}

		var summary network.Summary
		if raw, ok := config["summary"]; ok && raw != nil {
			obj, err := serialization.FromEmbedded(raw)
			if err != nil {
				return nil, fmt.Errorf("model comparison: summary: %w", err)
			}
			summary, ok = obj.(network.Summary)
			if !ok {
				return nil, fmt.Errorf("model comparison: summary decodes to %T", obj)
			}
		}

		a, err := NewModelComparison(nil, numModels, classifier, summary)
		if err != nil {
			return nil, err
		}
		if raw, ok := config["adapter"]; ok && raw != nil {
			obj, err := serialization.FromEmbedded(raw)
			if err != nil {
				return nil, fmt.Errorf("model comparison: adapter: %w", err)
			}
			pipeline, ok := obj.(*adapter.Adapter)
			if !ok {
				return nil, fmt.Errorf("model comparison: adapter decodes to %T", obj)
			}
			a.adapter = pipeline
		}
		return a, nil
	})
}
