// FILE: cmd/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lixenwraith/objconfig"
	"github.com/spf13/pflag"
)

// Encoder is the model's encoder block.
type Encoder struct {
	BatchSize int      `toml:"batch_size" help:"Samples per training step."`
	Layers    []int    `toml:"layers" help:"Hidden sizes, one per layer."`
	Dropout   float64  `toml:"dropout"`
	Tags      []string `toml:"tags"`
	Init      *string  `toml:"init" help:"Weight initialization scheme."`
}

// Model groups the encoder with model-wide settings.
type Model struct {
	Name string `toml:"name"`
}

// SGD is plain stochastic gradient descent.
type SGD struct {
	LR       float64 `toml:"lr" help:"Learning rate."`
	Momentum float64 `toml:"momentum"`
}

// Adam is the Adam optimizer.
type Adam struct {
	LR    float64   `toml:"lr" help:"Learning rate."`
	Betas []float64 `toml:"betas"`
}

// Trainer holds run-level settings.
type Trainer struct {
	Epochs  int    `toml:"epochs"`
	Verbose bool   `toml:"verbose"`
	Save    string `toml:"save" help:"Write the hyperparameter report to this file."`
}

func tree() *objconfig.Node {
	encoder := &objconfig.Node{
		Name:   "Encoder",
		Schema: objconfig.Struct(Encoder{BatchSize: 8, Layers: []int{64, 64}, Dropout: 0.1}),
	}

	model := &objconfig.Node{
		Name:     "Model",
		Schema:   objconfig.Struct(Model{Name: "tiny"}),
		Children: map[string]objconfig.Component{"encoder": encoder},
	}

	optimizer := objconfig.NewSwitch(map[string]*objconfig.Node{
		"sgd":  {Name: "SGD", Schema: objconfig.Struct(SGD{LR: 0.1, Momentum: 0.9})},
		"adam": {Name: "Adam", Schema: objconfig.Struct(Adam{LR: 1e-3, Betas: []float64{0.9, 0.999}})},
		"none": nil,
	}, "sgd")

	return (&objconfig.Node{
		Name:   "Trainer",
		Schema: objconfig.Struct(Trainer{Epochs: 10}),
		Children: map[string]objconfig.Component{
			"model":     model,
			"optimizer": optimizer,
		},
	}).WithDefaults(map[string]any{
		"model-encoder-init": "xavier",
	})
}

func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}

func run(args []string, stdout io.Writer) error {
	root := tree()

	p := objconfig.NewParser("trainer", args, pflag.ExitOnError)
	logLevel := p.FlagSet().String("log-level", "info", "Log level (debug, info, warn, error).")
	logFormat := p.FlagSet().String("log-format", "text", "Log format (text, json).")

	if err := objconfig.Setup(root, p); err != nil {
		return err
	}
	raw, err := p.Parse()
	if err != nil {
		return err
	}

	logger := newLogger(*logLevel, *logFormat, os.Stderr)

	inst, err := objconfig.Build(root, raw,
		objconfig.WithEnvPrefix("TRAINER"),
		objconfig.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	trainer, err := objconfig.ConfigAs[Trainer](inst)
	if err != nil {
		return err
	}
	optimizer, _ := inst.Choice("optimizer")
	logger.Info("Configuration ready.", "epochs", trainer.Epochs, "optimizer", optimizer)

	hp, err := inst.Hyperparameters()
	if err != nil {
		return err
	}

	if trainer.Save != "" {
		if err := objconfig.SaveHyperparameters(hp, trainer.Save); err != nil {
			return err
		}
		logger.Info("Hyperparameters saved.", "path", trainer.Save)
	}

	if trainer.Verbose {
		fmt.Fprint(stdout, inst.Dump())
	}
	return hp.WriteTOML(stdout)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		var nullErr *objconfig.NullDefaultError
		if errors.As(err, &nullErr) {
			fmt.Fprintf(os.Stderr, "missing values for %v\n", nullErr.Fields)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
