// FILE: lixenwraith/objconfig/fixtures_test.go
package objconfig

import (
	"fmt"
	"time"
)

type encoderConfig struct {
	BatchSize int      `toml:"batch_size" help:"Samples per step."`
	Layers    []int    `toml:"layers"`
	Tags      []string `toml:"tags"`
}

type modelConfig struct {
	Width int `toml:"width"`
}

type activation string

type trainerConfig struct {
	Epochs     int           `toml:"epochs"`
	Activation activation    `toml:"activation"`
	Timeout    time.Duration `toml:"timeout"`
	Verbose    bool          `toml:"verbose"`
	internal   int
	Private    string `toml:"_private"`
}

type optionA struct {
	Option int `toml:"option"`
}

type optionB struct {
	Rate float64 `toml:"rate"`
}

type initConfig struct {
	Init *string `toml:"init"`
}

func encoderNode() *Node {
	return &Node{
		Name:   "Encoder",
		Schema: Struct(encoderConfig{BatchSize: 8, Layers: []int{64, 64}}),
	}
}

// modelTree is trainer -> model -> encoder.
func modelTree() *Node {
	model := &Node{
		Name:     "Model",
		Schema:   Struct(modelConfig{Width: 4}),
		Children: map[string]Component{"encoder": encoderNode()},
	}
	return &Node{
		Name:     "Trainer",
		Schema:   Struct(trainerConfig{Epochs: 10, Activation: "relu", Timeout: 30 * time.Second}),
		Children: map[string]Component{"model": model},
	}
}

func choiceSwitch(defaultChoice ...string) *Switch {
	return NewSwitch(map[string]*Node{
		"a":    {Name: "A", Schema: Struct(optionA{Option: 1})},
		"b":    {Name: "B", Schema: Struct(optionB{Rate: 0.5})},
		"none": nil,
	}, defaultChoice...)
}

func switchTree(defaultChoice ...string) *Node {
	return &Node{
		Name:     "Root",
		Children: map[string]Component{"choice": choiceSwitch(defaultChoice...)},
	}
}

type rangeConfig struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

func (c rangeConfig) Validate() error {
	if c.Min > c.Max {
		return fmt.Errorf("min %d exceeds max %d", c.Min, c.Max)
	}
	return nil
}
