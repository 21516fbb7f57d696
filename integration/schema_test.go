package integration

import (
	"testing"

	"github.com/honeybbq/runconfig/domain/biaffine"
	"github.com/honeybbq/runconfig/pkg/runconfig"
)

func TestTypedSchemaFromPTB(t *testing.T) {
	t.Parallel()

	cfg, err := runconfig.Load(configPath("ptb", "ptb.ini"), runconfig.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tc, err := biaffine.FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}

	if tc.Data.PretrainedEmbeddingsFile != "data/glove.6B.100d.txt" {
		t.Fatalf("embeddings: %q", tc.Data.PretrainedEmbeddingsFile)
	}
	if tc.Network.WordDims != 100 || tc.Network.LSTMLayers != 3 {
		t.Fatalf("network: %+v", tc.Network)
	}
	if tc.Optimizer.LearningRate != 0.002 || tc.Optimizer.Epsilon != 1e-12 {
		t.Fatalf("optimizer: %+v", tc.Optimizer)
	}
	if tc.Run.TrainIters != 50000 || !tc.Run.Debug {
		t.Fatalf("run: %+v", tc.Run)
	}
	if tc.Save.SaveVocabPath != "result/ptb-debug/vocab" {
		t.Fatalf("save_vocab_path: %q", tc.Save.SaveVocabPath)
	}
}
