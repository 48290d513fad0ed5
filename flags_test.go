// FILE: lixenwraith/objconfig/flags_test.go
package objconfig

import (
	"io"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parseTypes struct {
	A  int           `toml:"a" help:"An int."`
	B  float64       `toml:"b"`
	C  []int         `toml:"c"`
	C2 []float64     `toml:"c2"`
	C3 []string      `toml:"c3"`
	D  bool          `toml:"d"`
	E  time.Duration `toml:"e"`
	S  string        `toml:"s"`
}

func newTestParser(args ...string) *Parser {
	p := NewParser("test", args, pflag.ContinueOnError)
	p.FlagSet().SetOutput(io.Discard)
	return p
}

func parseAndBuild(t *testing.T, node *Node, args ...string) *Instance {
	t.Helper()
	p := newTestParser(args...)
	require.NoError(t, Setup(node, p))
	raw, err := p.Parse()
	require.NoError(t, err)
	inst, err := Build(node, raw)
	require.NoError(t, err)
	return inst
}

func TestParseTypes(t *testing.T) {
	node := &Node{Name: "Types", Schema: Struct(parseTypes{A: 5, B: 1.5, C: []int{9}})}

	t.Run("ListLiterals", func(t *testing.T) {
		inst := parseAndBuild(t, node,
			"--c", "[1, 2, 3]",
			"--c2", "1., 2.5, 3",
			"--c3", "a,", "--c3", "b",
		)
		cfg, err := ConfigAs[parseTypes](inst)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, cfg.C)
		assert.Equal(t, []float64{1, 2.5, 3}, cfg.C2)
		assert.Equal(t, []string{"a,", "b"}, cfg.C3)
	})

	t.Run("ListsAccumulate", func(t *testing.T) {
		inst := parseAndBuild(t, node, "--c", "2", "--c", "3")
		cfg, _ := ConfigAs[parseTypes](inst)
		assert.Equal(t, []int{2, 3}, cfg.C)
	})

	t.Run("Scalars", func(t *testing.T) {
		inst := parseAndBuild(t, node, "--a=0x10", "--b", "2.25", "--d", "--e", "90s", "--s", "hello")
		cfg, _ := ConfigAs[parseTypes](inst)
		assert.Equal(t, 16, cfg.A)
		assert.Equal(t, 2.25, cfg.B)
		assert.True(t, cfg.D)
		assert.Equal(t, 90*time.Second, cfg.E)
		assert.Equal(t, "hello", cfg.S)
	})

	t.Run("UnsetFlagsKeepDefaults", func(t *testing.T) {
		p := newTestParser("--b", "3")
		require.NoError(t, Setup(node, p))
		raw, err := p.Parse()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"b": 3.0}, raw)

		inst, err := Build(node, raw)
		require.NoError(t, err)
		cfg, _ := ConfigAs[parseTypes](inst)
		assert.Equal(t, 5, cfg.A)
		assert.Equal(t, []int{9}, cfg.C)
	})

	t.Run("MalformedScalar", func(t *testing.T) {
		p := newTestParser("--a", "yodel")
		require.NoError(t, Setup(node, p))
		_, err := p.Parse()
		assert.Error(t, err)
	})

	t.Run("OutOfRangeScalar", func(t *testing.T) {
		type widths struct {
			Small int8    `toml:"small"`
			Count uint8   `toml:"count"`
			Ids   []int16 `toml:"ids"`
		}
		narrow := &Node{Name: "Widths", Schema: Struct(widths{})}

		for _, args := range [][]string{
			{"--small", "300"},
			{"--count", "256"},
			{"--count", "-1"},
			{"--ids", "1,40000"},
		} {
			p := newTestParser(args...)
			require.NoError(t, Setup(narrow, p))
			_, err := p.Parse()
			assert.Error(t, err, "args %v", args)
		}

		inst := parseAndBuild(t, narrow, "--small", "-128", "--count", "255", "--ids", "[1, 2]")
		cfg, err := ConfigAs[widths](inst)
		require.NoError(t, err)
		assert.Equal(t, widths{Small: -128, Count: 255, Ids: []int16{1, 2}}, cfg)
	})

	t.Run("MalformedListElement", func(t *testing.T) {
		p := newTestParser("--c", "1,x")
		require.NoError(t, Setup(node, p))
		_, err := p.Parse()
		assert.Error(t, err)
	})

	t.Run("PositionalArguments", func(t *testing.T) {
		p := newTestParser("stray")
		require.NoError(t, Setup(node, p))
		_, err := p.Parse()
		assert.ErrorIs(t, err, ErrLeftoverArguments)
	})
}

func TestSetupFlags(t *testing.T) {
	t.Run("HelpText", func(t *testing.T) {
		p := newTestParser()
		require.NoError(t, Setup(&Node{Schema: Struct(parseTypes{A: 5})}, p))

		a := p.FlagSet().Lookup("a")
		require.NotNil(t, a)
		assert.Equal(t, "An int.  Default: 5", a.Usage)
		assert.Equal(t, "int", a.Value.Type())

		b := p.FlagSet().Lookup("b")
		assert.Equal(t, "Default: 0", b.Usage)

		d := p.FlagSet().Lookup("d")
		assert.Equal(t, "true", d.NoOptDefVal)
	})

	t.Run("NilDefaultHelp", func(t *testing.T) {
		p := newTestParser()
		require.NoError(t, Setup(&Node{Schema: Struct(initConfig{})}, p))
		assert.Equal(t, "Default: none", p.FlagSet().Lookup("init").Usage)
	})

	t.Run("NestedNames", func(t *testing.T) {
		p := newTestParser()
		require.NoError(t, Setup(modelTree(), p))

		for _, name := range []string{"epochs", "model-width", "model-encoder-batch_size", "model-encoder-layers"} {
			assert.NotNil(t, p.FlagSet().Lookup(name), name)
		}
		assert.Nil(t, p.FlagSet().Lookup("_private"))
	})

	t.Run("UnknownFlag", func(t *testing.T) {
		p := newTestParser("--B-lr", "0.1")
		require.NoError(t, Setup(modelTree(), p))
		_, err := p.Parse()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown flag")
	})

	t.Run("Redefined", func(t *testing.T) {
		p := newTestParser()
		require.NoError(t, Setup(encoderNode(), p))
		err := Setup(encoderNode(), p)
		assert.ErrorIs(t, err, ErrFlagRedefined)
	})

	t.Run("ForeignFlagsNotReturned", func(t *testing.T) {
		p := newTestParser("--log-level", "debug", "--epochs", "3")
		level := p.FlagSet().String("log-level", "info", "")
		require.NoError(t, Setup(modelTree(), p))

		raw, err := p.Parse()
		require.NoError(t, err)
		assert.Equal(t, "debug", *level)
		assert.Equal(t, map[string]any{"epochs": int64(3)}, raw)
	})

	t.Run("EndToEnd", func(t *testing.T) {
		inst := parseAndBuild(t, modelTree(), "--model-encoder-batch_size", "16", "--model-encoder-layers", "[8, 4]")
		enc, _ := ConfigAs[encoderConfig](inst.Child("model").Child("encoder"))
		assert.Equal(t, 16, enc.BatchSize)
		assert.Equal(t, []int{8, 4}, enc.Layers)
	})
}

func TestSetupSwitch(t *testing.T) {
	t.Run("DefaultBranch", func(t *testing.T) {
		p := newTestParser()
		require.NoError(t, Setup(switchTree("a"), p))

		assert.NotNil(t, p.FlagSet().Lookup("choice-option"))
		assert.Nil(t, p.FlagSet().Lookup("choice-rate"))

		usage := p.FlagSet().Lookup("choice").Usage
		assert.Contains(t, usage, "Switch accepting: [a, b, none].")
		assert.Contains(t, usage, "Default: 'a'.")
		assert.NotContains(t, usage, "Inferred")
	})

	t.Run("InferredBranch", func(t *testing.T) {
		p := newTestParser("--choice", "b", "--choice-rate", "0.75")
		require.NoError(t, Setup(switchTree("a"), p))

		assert.Nil(t, p.FlagSet().Lookup("choice-option"))
		assert.NotNil(t, p.FlagSet().Lookup("choice-rate"))
		assert.Contains(t, p.FlagSet().Lookup("choice").Usage, "Inferred b; help shown corresponds to that option.")

		raw, err := p.Parse()
		require.NoError(t, err)
		inst, err := Build(switchTree("a"), raw)
		require.NoError(t, err)

		choice, _ := inst.Choice("choice")
		assert.Equal(t, "b", choice)
		cfg, _ := ConfigAs[optionB](inst.Child("choice"))
		assert.Equal(t, 0.75, cfg.Rate)
	})

	t.Run("EqualsFormAndLastWins", func(t *testing.T) {
		p := newTestParser("--choice=a", "--choice=b")
		require.NoError(t, Setup(switchTree(), p))
		assert.NotNil(t, p.FlagSet().Lookup("choice-rate"))
	})

	t.Run("NoDefaultNoChoice", func(t *testing.T) {
		p := newTestParser()
		require.NoError(t, Setup(switchTree(), p))
		assert.NotNil(t, p.FlagSet().Lookup("choice"))
		assert.Nil(t, p.FlagSet().Lookup("choice-option"))
		assert.Nil(t, p.FlagSet().Lookup("choice-rate"))
	})

	t.Run("NoOpBranch", func(t *testing.T) {
		inst := parseAndBuild(t, switchTree("a"), "--choice", "none")
		assert.Nil(t, inst.Child("choice"))
	})

	t.Run("UnknownInferred", func(t *testing.T) {
		p := newTestParser("--choice", "z")
		err := Setup(switchTree(), p)
		assert.ErrorIs(t, err, ErrUnknownDiscriminator)
	})

	t.Run("PeekStopsAtTerminator", func(t *testing.T) {
		p := newTestParser("--", "--choice", "b")
		require.NoError(t, Setup(switchTree("a"), p))
		assert.NotNil(t, p.FlagSet().Lookup("choice-option"))
	})
}
