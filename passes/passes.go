// Copyright 2025 The Stencil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/stencil-lang/stencil/internal/lang"
	"github.com/stencil-lang/stencil/internal/lang/openmp"
	"github.com/stencil-lang/stencil/internal/par"
	"github.com/stencil-lang/stencil/internal/parallel"
	"github.com/stencil-lang/stencil/internal/platform"
	"github.com/stencil-lang/stencil/internal/registry"
)

// Target selects host shared-memory parallelism or device offload.
type Target = par.Target

// Targets.
const (
	Host   Target = par.Host
	Device Target = par.Device
)

// Placement is the per-nest decision of the device-aware specializer.
type Placement = par.Placement

// Placements.
const (
	OffloadToDevice Placement = par.OffloadToDevice
	FallBackToHost  Placement = par.FallBackToHost
	Declined        Placement = par.Declined
)

// Core configuration and pass types.
type (
	Options      = par.Options
	Config       = par.Config
	Parallelizer = par.Parallelizer
	NodeBuilders = par.NodeBuilders
	Pass         = par.Pass
	Metadata     = par.Metadata
	Arg          = par.Arg
	IMaskEntry   = par.IMaskEntry
)

// Platform describes the hardware shape driving the heuristics.
type Platform = platform.Platform

// SymbolRegistry owns the symbol namespace of one compilation.
type SymbolRegistry = registry.SymbolRegistry

// Constructs is a dialect's directive builder table.
type Constructs = lang.Constructs

// DefaultOptions returns the stock thresholds, overridable from the
// environment (STENCIL_PAR_*).
func DefaultOptions() Options { return par.DefaultOptions() }

// DetectPlatform probes the host hardware.
func DetectPlatform() Platform { return platform.Detect() }

// NewRegistry returns a fresh symbol registry for one compilation.
func NewRegistry() *SymbolRegistry { return registry.New() }

// OpenMP returns the OpenMP construct table for the given target.
func OpenMP(target Target) Constructs {
	if target == Device {
		return openmp.Device()
	}
	return openmp.Host()
}

// New assembles a Parallelizer from cfg.
func New(cfg Config) (*Parallelizer, error) { return par.New(cfg) }

// Run applies the passes, in order, to every routine of prog, processing
// routines concurrently.
var Run = par.Run

// EngineConfig controls the concurrent fan-out of Run.
type EngineConfig = parallel.Config

// DefaultEngineConfig sizes the fan-out to the host CPU count.
func DefaultEngineConfig() EngineConfig { return parallel.DefaultConfig() }

// OnDevice reports whether every buffer referenced below a node is
// device-resident.
var OnDevice = par.OnDevice

// FullDim is the IMaskEntry mapping a dimension's whole extent.
var FullDim = par.FullDim
