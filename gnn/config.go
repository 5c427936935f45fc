// SPDX-License-Identifier: MIT

// Package gnn - declarative network configuration (YAML).
//
// Example:
//
//	name: gat-cora
//	seed: 7
//	layers:
//	  - policy: attention
//	    in_dim: 1433
//	    out_dim: 8
//	    heads: 8
//	    merge: concat
//	    activation: elu
//	  - policy: attention
//	    in_dim: 64
//	    out_dim: 7
//	    heads: 1
//
// Seeds: a layer without an explicit seed derives one from the network seed
// and its index; head k of a layer derives its seed from the layer seed and k.
// Equal files therefore always build equal networks.

package gnn

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// NetworkConfig describes a stack of layers.
type NetworkConfig struct {
	Name     string        `yaml:"name,omitempty"`
	Seed     int64         `yaml:"seed,omitempty"`
	Parallel bool          `yaml:"parallel,omitempty"`
	Layers   []LayerConfig `yaml:"layers"`
}

// LayerConfig describes one stage: a single layer, or Heads attention heads
// merged with Merge.
type LayerConfig struct {
	Name            string     `yaml:"name,omitempty"`
	Policy          Policy     `yaml:"policy"`
	InDim           int        `yaml:"in_dim"`
	OutDim          int        `yaml:"out_dim"`
	Relations       int        `yaml:"relations,omitempty"`
	Heads           int        `yaml:"heads,omitempty"`
	Merge           MergeMode  `yaml:"merge,omitempty"`
	Activation      Activation `yaml:"activation,omitempty"`
	NegativeSlope   *float64   `yaml:"negative_slope,omitempty"`
	RequireNeighbor bool       `yaml:"require_neighbor,omitempty"`
	Seed            *int64     `yaml:"seed,omitempty"`
}

// ParseConfig decodes a YAML document. Unknown keys are rejected.
//
// Errors:
//   - ErrInvalidConfig wrapping the decoder or validation error.
func ParseConfig(data []byte) (*NetworkConfig, error) {
	return decodeConfig(bytes.NewReader(data))
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (*NetworkConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gnnErrorf(opConfig, err)
	}
	defer f.Close()

	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (*NetworkConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg NetworkConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, gnnErrorf(opConfig, fmt.Errorf("empty document: %w", ErrInvalidConfig))
		}
		return nil, gnnErrorf(opConfig, fmt.Errorf("%v: %w", err, ErrInvalidConfig))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *NetworkConfig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, gnnErrorf(opConfig, err)
	}
	if err := enc.Close(); err != nil {
		return nil, gnnErrorf(opConfig, err)
	}

	return buf.Bytes(), nil
}

// Validate checks every layer and that consecutive layers chain.
// All failures wrap ErrInvalidConfig.
func (c *NetworkConfig) Validate() error {
	if len(c.Layers) == 0 {
		return gnnErrorf(opConfig, fmt.Errorf("no layers: %w", ErrInvalidConfig))
	}
	for i := range c.Layers {
		lc := &c.Layers[i]
		if err := lc.validate(); err != nil {
			return gnnErrorf(opConfig, fmt.Errorf("layer %d: %w", i, err))
		}
		if i > 0 && c.Layers[i-1].outWidth() != lc.InDim {
			return gnnErrorf(opConfig, fmt.Errorf("layer %d expects %d inputs, layer %d produces %d: %w",
				i, lc.InDim, i-1, c.Layers[i-1].outWidth(), ErrInvalidConfig))
		}
	}

	return nil
}

func (lc *LayerConfig) validate() error {
	switch {
	case !lc.Policy.Valid():
		return fmt.Errorf("policy %s: %w", lc.Policy, ErrInvalidConfig)
	case lc.InDim <= 0 || lc.OutDim <= 0:
		return fmt.Errorf("dimensions %dx%d: %w", lc.InDim, lc.OutDim, ErrInvalidConfig)
	case lc.Relations < 0 || lc.Heads < 0:
		return fmt.Errorf("negative relations or heads: %w", ErrInvalidConfig)
	case lc.Heads > 1 && lc.Policy != PolicyAttention:
		return fmt.Errorf("%d heads with policy %s: %w", lc.Heads, lc.Policy, ErrInvalidConfig)
	case lc.Policy == PolicyAttention && lc.Relations > 1:
		return fmt.Errorf("attention over %d relations: %w", lc.Relations, ErrInvalidConfig)
	case lc.NegativeSlope != nil && !finiteSlope(*lc.NegativeSlope):
		return fmt.Errorf("negative_slope %g: %w", *lc.NegativeSlope, ErrInvalidConfig)
	}

	return nil
}

// outWidth is the stage output width after merging heads.
func (lc *LayerConfig) outWidth() int {
	if lc.Heads > 1 && lc.Merge == MergeConcat {
		return lc.Heads * lc.OutDim
	}
	return lc.OutDim
}

// Build validates the configuration and constructs the network.
func (c *NetworkConfig) Build() (*Network, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	stages := make([]Stage, len(c.Layers))
	for i := range c.Layers {
		lc := &c.Layers[i]
		seed := deriveSeed(c.Seed, uint64(i))
		if lc.Seed != nil {
			seed = *lc.Seed
		}
		f, err := c.buildStage(lc, i, seed)
		if err != nil {
			return nil, gnnErrorf(opConfig, fmt.Errorf("layer %d: %w", i, err))
		}
		stages[i] = Stage{Forwarder: f, Activation: lc.Activation}
	}

	return NewNetwork(c.Name, stages...)
}

func (c *NetworkConfig) buildStage(lc *LayerConfig, index int, seed int64) (Forwarder, error) {
	name := lc.Name
	if name == "" {
		name = fmt.Sprintf("layer%d", index)
	}
	opts := []Option{WithName(name)}
	if lc.Relations > 0 {
		opts = append(opts, WithRelations(lc.Relations))
	}
	if lc.NegativeSlope != nil {
		opts = append(opts, WithNegativeSlope(*lc.NegativeSlope))
	}
	if lc.RequireNeighbor {
		opts = append(opts, WithRequireNeighbor())
	}
	if c.Parallel {
		opts = append(opts, WithParallelRelations())
	}

	if lc.Heads <= 1 {
		return NewLayer(lc.InDim, lc.OutDim, lc.Policy, append(opts, WithSeed(seed))...)
	}
	heads := make([]*Layer, lc.Heads)
	for k := range heads {
		hopts := append(append([]Option(nil), opts...),
			WithSeed(deriveSeed(seed, uint64(k))),
			WithName(fmt.Sprintf("%s/head%d", name, k)))
		h, err := NewLayer(lc.InDim, lc.OutDim, lc.Policy, hopts...)
		if err != nil {
			return nil, &HeadError{Head: k, Err: err}
		}
		heads[k] = h
	}
	var mopts []MultiHeadOption
	if c.Parallel {
		mopts = append(mopts, WithParallelHeads())
	}

	return NewMultiHead(heads, lc.Merge, append(mopts, WithHeadsName(name))...)
}

// UnmarshalYAML decodes a policy name.
func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParsePolicy(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = v
	return nil
}

// MarshalYAML encodes the policy name.
func (p Policy) MarshalYAML() (interface{}, error) { return p.String(), nil }

// UnmarshalYAML decodes a merge mode name.
func (m *MergeMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseMergeMode(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = v
	return nil
}

// MarshalYAML encodes the merge mode name.
func (m MergeMode) MarshalYAML() (interface{}, error) { return m.String(), nil }

// UnmarshalYAML decodes an activation name.
func (a *Activation) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseActivation(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = v
	return nil
}

// MarshalYAML encodes the activation name.
func (a Activation) MarshalYAML() (interface{}, error) { return a.String(), nil }
