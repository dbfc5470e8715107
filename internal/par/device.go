package par

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stencil-lang/stencil/internal/expr"
	"github.com/stencil-lang/stencil/internal/ir"
	"github.com/stencil-lang/stencil/internal/lang"
)

// Placement is the per-nest decision of the device-aware specializer.
type Placement int

const (
	// OffloadToDevice annotates the nest for accelerator execution.
	OffloadToDevice Placement = iota

	// FallBackToHost runs the ordinary host path on the nest.
	FallBackToHost

	// Declined leaves the nest sequential.
	Declined
)

// OnDevice reports whether every buffer referenced below n is resident in
// device memory. With writesOnly set, only written buffers are considered.
//
// Residency fails exactly for time-history buffers retained across the full
// run that were not declared, via gpuFit, to fit in device memory.
func OnDevice(n ir.Node, gpuFit map[string]bool, writesOnly bool) bool {
	for _, b := range ir.FindBuffers(n, writesOnly) {
		if b.TimeHistory && !gpuFit[b.Name] {
			return false
		}
	}
	return true
}

// placement decides where one nest runs. Residency is judged over writes
// only: reading host-resident data does not force the nest off the device.
func (p *Parallelizer) placement(root *ir.Iteration) Placement {
	if OnDevice(root, p.opts.GPUFit, true) {
		return OffloadToDevice
	}
	if !p.opts.ParDisabled {
		return FallBackToHost
	}
	return Declined
}

// makeParTreeForTarget dispatches the builder per target and, for Device,
// per placement decision.
func (p *Parallelizer) makeParTreeForTarget(candidates []*ir.Iteration) (*ir.Iteration, *ir.ParallelTree, []*ir.Iteration) {
	if p.target != Device {
		return p.makeParTree(candidates, expr.Symbol{})
	}

	root := candidates[0]
	switch p.placement(root) {
	case OffloadToDevice:
		collapsable := p.findCollapsable(root, candidates)
		body := &ir.DeviceIteration{
			It:        root,
			NCollapse: 1 + len(collapsable),
			KnownFit:  sortedNames(p.opts.GPUFit),
		}
		tree := &ir.ParallelTree{Root: body}
		collapsed := append([]*ir.Iteration{root}, collapsable...)
		return root, tree, collapsed
	case FallBackToHost:
		return p.makeParTree(candidates, expr.Symbol{})
	default:
		return root, nil, nil
	}
}

func sortedNames(set map[string]bool) []string {
	var out []string
	for name, in := range set {
		if in {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// IMaskEntry restricts one dimension of a data-movement directive. A Full
// entry maps the whole extent; otherwise Start with a nil Size maps a
// single index.
type IMaskEntry struct {
	Full  bool
	Start expr.Expr
	Size  expr.Expr
}

// FullDim is the IMaskEntry mapping a dimension's whole extent.
func FullDim() IMaskEntry { return IMaskEntry{Full: true} }

// sections renders the per-dimension access ranges of b under imask. A nil
// imask maps every dimension fully.
func sections(b *ir.Buffer, imask []IMaskEntry) (string, error) {
	if imask == nil {
		imask = make([]IMaskEntry, len(b.Extents))
		for i := range imask {
			imask[i] = FullDim()
		}
	}
	if len(imask) != len(b.Extents) {
		return "", fmt.Errorf("par: imask rank %d does not match buffer %s rank %d",
			len(imask), b.Name, len(b.Extents))
	}
	var sb strings.Builder
	for i, m := range imask {
		var start, size string
		switch {
		case m.Full:
			start, size = "0", b.Extents[i].String()
		case m.Size == nil:
			start, size = m.Start.String(), "1"
		default:
			start, size = m.Start.String(), m.Size.String()
		}
		fmt.Fprintf(&sb, "[%s:%s]", start, size)
	}
	return sb.String(), nil
}

func fullSections(b *ir.Buffer) string {
	var sb strings.Builder
	for _, e := range b.Extents {
		fmt.Fprintf(&sb, "[0:%s]", e.String())
	}
	return sb.String()
}

// MapTo copies b to the device and keeps it mapped.
func (p *Parallelizer) MapTo(b *ir.Buffer, imask []IMaskEntry) (string, error) {
	return p.mapWithSections(lang.MapEnterTo, b, imask)
}

// MapAlloc maps b on the device without copying.
func (p *Parallelizer) MapAlloc(b *ir.Buffer, imask []IMaskEntry) (string, error) {
	return p.mapWithSections(lang.MapEnterAlloc, b, imask)
}

func (p *Parallelizer) mapWithSections(key string, b *ir.Buffer, imask []IMaskEntry) (string, error) {
	builder, err := p.lang.Get(key)
	if err != nil {
		return "", err
	}
	secs, err := sections(b, imask)
	if err != nil {
		return "", err
	}
	return builder(b.Name, secs), nil
}

// MapUpdate refreshes the host copy of b over its full extent.
func (p *Parallelizer) MapUpdate(b *ir.Buffer) (string, error) {
	builder, err := p.lang.Get(lang.MapUpdate)
	if err != nil {
		return "", err
	}
	return builder(b.Name, fullSections(b)), nil
}

// MapUpdateHost refreshes the host copy of b. A nonempty queueID detaches
// the transfer onto an asynchronous queue.
func (p *Parallelizer) MapUpdateHost(b *ir.Buffer, imask []IMaskEntry, queueID string) (string, error) {
	return p.mapUpdateDir(lang.MapUpdateHost, b, imask, queueID)
}

// MapUpdateDevice refreshes the device copy of b.
func (p *Parallelizer) MapUpdateDevice(b *ir.Buffer, imask []IMaskEntry, queueID string) (string, error) {
	return p.mapUpdateDir(lang.MapUpdateDev, b, imask, queueID)
}

func (p *Parallelizer) mapUpdateDir(key string, b *ir.Buffer, imask []IMaskEntry, queueID string) (string, error) {
	builder, err := p.lang.Get(key)
	if err != nil {
		return "", err
	}
	secs, err := sections(b, imask)
	if err != nil {
		return "", err
	}
	clause := ""
	if queueID != "" {
		clause = " nowait"
	}
	return builder(b.Name, secs, clause), nil
}

// MapRelease drops the mapping of b, optionally predicated on the removal
// flag devicerm.
func (p *Parallelizer) MapRelease(b *ir.Buffer, devicerm expr.Symbol) (string, error) {
	builder, err := p.lang.Get(lang.MapRelease)
	if err != nil {
		return "", err
	}
	clause := ""
	if devicerm.Name != "" {
		clause = fmt.Sprintf(" if(%s)", devicerm.Name)
	}
	return builder(b.Name, fullSections(b), clause), nil
}

// MapDelete copies b back and drops its mapping. The guard requires the
// removal flag and every mapped extent to be nonzero: with domain
// decomposition a local buffer may be zero-sized, and copying it back
// would fault.
func (p *Parallelizer) MapDelete(b *ir.Buffer, imask []IMaskEntry, devicerm expr.Symbol) (string, error) {
	builder, err := p.lang.Get(lang.MapExitDelete)
	if err != nil {
		return "", err
	}
	secs, err := sections(b, imask)
	if err != nil {
		return "", err
	}
	var items []string
	if devicerm.Name != "" {
		items = append(items, devicerm.Name)
	}
	for _, e := range b.Extents {
		items = append(items, fmt.Sprintf("(%s != 0)", e.String()))
	}
	clause := fmt.Sprintf(" if(%s)", strings.Join(items, " && "))
	return builder(b.Name, secs, clause), nil
}

// DirectTransfers wraps every point-to-point transfer call in a block
// asserting device-pointer-direct semantics, so multi-accelerator transfers
// bypass host staging.
func (p *Parallelizer) DirectTransfers(fn *ir.Callable) (*ir.Callable, Metadata, error) {
	subs := ir.NewSubs()
	for _, call := range ir.FindTransferCalls(fn) {
		header := fmt.Sprintf("#pragma omp target data use_device_ptr(%s)", call.Buffer.Name)
		subs.Put(call, &ir.Block{Header: header, Body: []ir.Node{call}})
	}
	return ir.Transform(fn, subs).(*ir.Callable), Metadata{}, nil
}
