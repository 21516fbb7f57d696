// Package biaffine maps a resolved run configuration onto the typed
// hyperparameter schema of the deep biaffine attention dependency parser.
// The package only describes a training run; the trainer, data loader and
// checkpoint manager consuming these groups live elsewhere.
package biaffine

import (
	"fmt"
	"path"

	"github.com/honeybbq/runconfig/pkg/rcerrors"
	"github.com/honeybbq/runconfig/pkg/runconfig"
)

// Data locates the corpora and pretrained embeddings.
type Data struct {
	DataDir                  string
	PretrainedEmbeddingsFile string
	TrainFile                string
	DevFile                  string
	TestFile                 string
	MinOccurCount            int
}

// Save decides checkpoint load/save paths. Paths not present in the
// document are derived by joining the directory value with the
// conventional fragment, matching the original layout
// (save_dir/config.ini, save_dir/model, save_dir/vocab).
type Save struct {
	SaveDir       string
	ConfigFile    string
	SaveModelPath string
	SaveVocabPath string
	LoadDir       string
	LoadModelPath string
	LoadVocabPath string
}

// Network holds the architecture hyperparameters.
type Network struct {
	WordDims      int
	TagDims       int
	LSTMLayers    int
	LSTMHiddens   int
	MLPArcSize    int
	MLPRelSize    int
	MLPKeepProb   float64
	FFKeepProb    float64
	RecurKeepProb float64
	DropoutMLP    float64
}

// Optimizer holds the Adam optimizer hyperparameters.
type Optimizer struct {
	LearningRate float64
	Decay        float64
	DecaySteps   int
	Beta1        float64
	Beta2        float64
	Epsilon      float64
}

// Run controls batching and iteration counts.
type Run struct {
	NumBucketsTrain int
	NumBucketsValid int
	NumBucketsTest  int
	TrainIters      int
	TrainBatchSize  int
	TestBatchSize   int
	ValidateEvery   int
	SaveAfter       int
	Debug           bool
}

// TrainConfig 是一次训练的完整类型化描述。
type TrainConfig struct {
	Data      Data
	Save      Save
	Network   Network
	Optimizer Optimizer
	Run       Run
}

// Section and key names as they appear in the document.
const (
	sectionData      = "Data"
	sectionSave      = "Save"
	sectionNetwork   = "Network"
	sectionOptimizer = "Optimizer"
	sectionRun       = "Run"
)

// FromConfig decodes and validates the typed schema from a resolved
// configuration. Every accessor failure (missing key, unresolved reference,
// coercion) aborts decoding; a run must not start on a partial schema.
func FromConfig(cfg *runconfig.Config) (*TrainConfig, error) {
	if cfg == nil {
		return nil, rcerrors.New(rcerrors.KindValidation, fmt.Errorf("config is nil"))
	}

	r := &reader{cfg: cfg}
	tc := &TrainConfig{}

	tc.Data = Data{
		DataDir:                  r.strDefault(sectionData, "data_dir", ""),
		PretrainedEmbeddingsFile: r.str(sectionData, "pretrained_embeddings_file"),
		TrainFile:                r.str(sectionData, "train_file"),
		DevFile:                  r.str(sectionData, "dev_file"),
		TestFile:                 r.str(sectionData, "test_file"),
		MinOccurCount:            r.integer(sectionData, "min_occur_count"),
	}

	saveDir := r.str(sectionSave, "save_dir")
	loadDir := r.strDefault(sectionSave, "load_dir", saveDir)
	tc.Save = Save{
		SaveDir:       saveDir,
		ConfigFile:    r.strDefault(sectionSave, "config_file", path.Join(saveDir, "config.ini")),
		SaveModelPath: r.strDefault(sectionSave, "save_model_path", path.Join(saveDir, "model")),
		SaveVocabPath: r.strDefault(sectionSave, "save_vocab_path", path.Join(saveDir, "vocab")),
		LoadDir:       loadDir,
		LoadModelPath: r.strDefault(sectionSave, "load_model_path", path.Join(loadDir, "model")),
		LoadVocabPath: r.strDefault(sectionSave, "load_vocab_path", path.Join(loadDir, "vocab")),
	}

	tc.Network = Network{
		WordDims:      r.integer(sectionNetwork, "word_dims"),
		TagDims:       r.integer(sectionNetwork, "tag_dims"),
		LSTMLayers:    r.integer(sectionNetwork, "lstm_layers"),
		LSTMHiddens:   r.integer(sectionNetwork, "lstm_hiddens"),
		MLPArcSize:    r.integer(sectionNetwork, "mlp_arc_size"),
		MLPRelSize:    r.integer(sectionNetwork, "mlp_rel_size"),
		MLPKeepProb:   r.float(sectionNetwork, "mlp_keep_prob"),
		FFKeepProb:    r.float(sectionNetwork, "ff_keep_prob"),
		RecurKeepProb: r.float(sectionNetwork, "recur_keep_prob"),
		DropoutMLP:    r.float(sectionNetwork, "dropout_mlp"),
	}

	tc.Optimizer = Optimizer{
		LearningRate: r.float(sectionOptimizer, "learning_rate"),
		Decay:        r.floatDefault(sectionOptimizer, "decay", 0.75),
		DecaySteps:   r.intDefault(sectionOptimizer, "decay_steps", 5000),
		Beta1:        r.float(sectionOptimizer, "beta_1"),
		Beta2:        r.float(sectionOptimizer, "beta_2"),
		Epsilon:      r.float(sectionOptimizer, "epsilon"),
	}

	numBucketsValid := r.integer(sectionRun, "num_buckets_valid")
	tc.Run = Run{
		NumBucketsTrain: r.integer(sectionRun, "num_buckets_train"),
		NumBucketsValid: numBucketsValid,
		NumBucketsTest:  r.intDefault(sectionRun, "num_buckets_test", numBucketsValid),
		TrainIters:      r.integer(sectionRun, "train_iters"),
		TrainBatchSize:  r.integer(sectionRun, "train_batch_size"),
		TestBatchSize:   r.integer(sectionRun, "test_batch_size"),
		ValidateEvery:   r.intDefault(sectionRun, "validate_every", 100),
		SaveAfter:       r.intDefault(sectionRun, "save_after", 5000),
		Debug:           r.boolDefault(sectionRun, "debug", false),
	}

	if r.err != nil {
		return nil, r.err
	}
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	return tc, nil
}

// Validate 检查取值范围。首个失败即返回。
func (c *TrainConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Data.TrainFile != "", "[Data] train_file is empty"},
		{c.Data.DevFile != "", "[Data] dev_file is empty"},
		{c.Data.MinOccurCount >= 0, "[Data] min_occur_count must be >= 0"},
		{c.Save.SaveDir != "", "[Save] save_dir is empty"},
		{c.Network.WordDims > 0, "[Network] word_dims must be positive"},
		{c.Network.TagDims > 0, "[Network] tag_dims must be positive"},
		{c.Network.LSTMLayers > 0, "[Network] lstm_layers must be positive"},
		{c.Network.LSTMHiddens > 0, "[Network] lstm_hiddens must be positive"},
		{c.Network.MLPArcSize > 0, "[Network] mlp_arc_size must be positive"},
		{c.Network.MLPRelSize > 0, "[Network] mlp_rel_size must be positive"},
		{keepProb(c.Network.MLPKeepProb), "[Network] mlp_keep_prob must be in (0, 1]"},
		{keepProb(c.Network.FFKeepProb), "[Network] ff_keep_prob must be in (0, 1]"},
		{keepProb(c.Network.RecurKeepProb), "[Network] recur_keep_prob must be in (0, 1]"},
		{c.Network.DropoutMLP >= 0 && c.Network.DropoutMLP < 1, "[Network] dropout_mlp must be in [0, 1)"},
		{c.Optimizer.LearningRate > 0, "[Optimizer] learning_rate must be positive"},
		{c.Optimizer.Epsilon > 0, "[Optimizer] epsilon must be positive"},
		{c.Run.NumBucketsTrain > 0, "[Run] num_buckets_train must be positive"},
		{c.Run.NumBucketsValid > 0, "[Run] num_buckets_valid must be positive"},
		{c.Run.TrainIters > 0, "[Run] train_iters must be positive"},
		{c.Run.TrainBatchSize > 0, "[Run] train_batch_size must be positive"},
		{c.Run.TestBatchSize > 0, "[Run] test_batch_size must be positive"},
	}
	for _, check := range checks {
		if !check.ok {
			return rcerrors.New(rcerrors.KindValidation, fmt.Errorf("%s", check.msg))
		}
	}
	return nil
}

func keepProb(p float64) bool {
	return p > 0 && p <= 1
}

// reader 按需读取类型化值，记录首个错误后停止求值。
type reader struct {
	cfg *runconfig.Config
	err error
}

func (r *reader) str(section, key string) string {
	if r.err != nil {
		return ""
	}
	value, err := r.cfg.Get(section, key)
	if err != nil {
		r.err = err
	}
	return value
}

func (r *reader) strDefault(section, key, fallback string) string {
	if r.err != nil || !r.cfg.Has(section, key) {
		return fallback
	}
	return r.str(section, key)
}

func (r *reader) integer(section, key string) int {
	if r.err != nil {
		return 0
	}
	value, err := r.cfg.GetInt(section, key)
	if err != nil {
		r.err = err
	}
	return value
}

func (r *reader) intDefault(section, key string, fallback int) int {
	if r.err != nil || !r.cfg.Has(section, key) {
		return fallback
	}
	return r.integer(section, key)
}

func (r *reader) float(section, key string) float64 {
	if r.err != nil {
		return 0
	}
	value, err := r.cfg.GetFloat(section, key)
	if err != nil {
		r.err = err
	}
	return value
}

func (r *reader) floatDefault(section, key string, fallback float64) float64 {
	if r.err != nil || !r.cfg.Has(section, key) {
		return fallback
	}
	return r.float(section, key)
}

func (r *reader) boolDefault(section, key string, fallback bool) bool {
	if r.err != nil || !r.cfg.Has(section, key) {
		return fallback
	}
	value, err := r.cfg.GetBool(section, key)
	if err != nil {
		r.err = err
	}
	return value
}
