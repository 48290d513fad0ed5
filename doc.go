// File: lixenwraith/objconfig/doc.go

// Package objconfig builds trees of validated configuration objects from
// command-line flags, environment variables and declared defaults.
//
// A tree is declared with Nodes. Each Node has an optional Schema (usually a
// struct whose field values are the defaults), per-scope default overrides
// and named children, which are Nodes or Switches. Field names are joined
// with "-" to form flags: field batch_size of child encoder of child model is
// --model-encoder-batch_size, and with env prefix "ML" it is also read from
// ML_MODEL_ENCODER_BATCH_SIZE.
//
// Quick Start:
//
//	type Encoder struct {
//	    BatchSize int     `toml:"batch_size" help:"Samples per step."`
//	    Dropout   float64 `toml:"dropout"`
//	}
//
//	root := &objconfig.Node{
//	    Children: map[string]objconfig.Component{
//	        "encoder": &objconfig.Node{Schema: objconfig.Struct(Encoder{BatchSize: 8})},
//	        "optimizer": objconfig.NewSwitch(map[string]*objconfig.Node{
//	            "sgd":  {Schema: objconfig.Struct(SGD{LR: 0.1})},
//	            "none": nil,
//	        }, "sgd"),
//	    },
//	}
//
//	inst, err := objconfig.Quick(root, "ML")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enc, _ := objconfig.ConfigAs[Encoder](inst.Child("encoder"))
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--encoder-batch_size=16)
//  2. Environment variables (ML_ENCODER_BATCH_SIZE=16)
//  3. Overrides from Node.WithDefaults or a defaults file
//  4. Schema defaults
//
// A Switch registers one flag and exposes the flags of the branch named on
// the command line, so --help shows the options of the active choice.
// Once built, an Instance flattens into a Hyperparameters report keyed by
// the same dashed names.
//
// Builds are single-threaded and own their argument mapping. Node
// declarations are never mutated and may be shared.
package objconfig
