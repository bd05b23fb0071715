// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layout computes byte layouts of texture subresources.
//
// Every function in this package is pure. A Calculator holds only a
// read-only format table and a sample limit, so one Calculator may be
// shared by any number of goroutines.
package layout

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
	"github.com/gogpu/rhi/resource"
)

// MaxSamples is the default upper bound for multi-sample counts.
const MaxSamples = 64

// SubresourceLayout is the memory layout of one subresource.
type SubresourceLayout struct {
	// RowStride is the number of bytes per row of blocks.
	RowStride uint64

	// LayerStride is the number of bytes per 2D slice.
	LayerStride uint64

	// DataSize is the number of bytes of the whole subresource.
	DataSize uint64
}

// Rows returns the number of block rows per slice.
func (l SubresourceLayout) Rows() uint64 {
	if l.RowStride == 0 {
		return 0
	}
	return l.LayerStride / l.RowStride
}

// DataLayout returns the WebGPU data layout for copying l.
func (l SubresourceLayout) DataLayout() gputypes.TextureDataLayout {
	return gputypes.TextureDataLayout{
		BytesPerRow:  uint32(l.RowStride),
		RowsPerImage: uint32(l.Rows()),
	}
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMaxSamples sets the upper bound used by GetClampedSamples.
// Values below 1 are ignored.
func WithMaxSamples(n uint32) Option {
	return func(c *Calculator) {
		if n >= 1 {
			c.maxSamples = n
		}
	}
}

// Calculator computes layouts against one format table.
type Calculator struct {
	table      *format.Table
	maxSamples uint32
}

// NewCalculator returns a Calculator that resolves formats in table.
// A nil table selects format.DefaultTable.
func NewCalculator(table *format.Table, opts ...Option) *Calculator {
	if table == nil {
		table = format.DefaultTable()
	}
	c := &Calculator{table: table, maxSamples: MaxSamples}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = NewCalculator(nil)

// Default returns the Calculator for format.DefaultTable.
func Default() *Calculator {
	return defaultCalculator
}

// Table returns the calculator's format table.
func (c *Calculator) Table() *format.Table {
	return c.table
}

// MaxSamples returns the sample limit.
func (c *Calculator) MaxSamples() uint32 {
	return c.maxSamples
}

func (c *Calculator) blockInfo(f format.Format) (format.Info, error) {
	info, ok := c.table.Lookup(f)
	if !ok {
		return format.Info{}, fmt.Errorf("%w: %v is not in the format table", rhi.ErrUnsupportedFormat, f)
	}
	if !info.HasLayout() {
		return format.Info{}, fmt.Errorf("%w: %v has no backend-neutral byte layout", rhi.ErrUnsupportedFormat, f)
	}
	return info, nil
}

// CalcSubresourceLayout returns the tightly packed layout of numArrayLayers
// layers of extent in format f. Partial blocks round up; zero extents give
// zero sizes.
func (c *Calculator) CalcSubresourceLayout(f format.Format, extent resource.Extent3D, numArrayLayers uint32) (SubresourceLayout, error) {
	return c.CalcAlignedSubresourceLayout(f, extent, numArrayLayers, Alignment{})
}

// CalcAlignedSubresourceLayout is like CalcSubresourceLayout but pads each
// row to a.RowAlignment and the total size to a.PlacementAlignment.
func (c *Calculator) CalcAlignedSubresourceLayout(f format.Format, extent resource.Extent3D, numArrayLayers uint32, a Alignment) (SubresourceLayout, error) {
	info, err := c.blockInfo(f)
	if err != nil {
		return SubresourceLayout{}, err
	}

	blocksPerRow := ceilDiv(uint64(extent.Width), uint64(info.BlockWidth))
	blockRows := ceilDiv(uint64(extent.Height), uint64(info.BlockHeight))

	var l SubresourceLayout
	l.RowStride = alignUp(blocksPerRow*uint64(info.BlockSize), uint64(a.RowAlignment))
	l.LayerStride = l.RowStride * blockRows
	l.DataSize = alignUp(l.LayerStride*uint64(extent.Depth)*uint64(numArrayLayers), uint64(a.PlacementAlignment))
	return l, nil
}

// TextureDataSize returns the tightly packed size of every mip level of
// every layer of the texture described by desc.
func (c *Calculator) TextureDataSize(desc *resource.TextureDescriptor) (uint64, error) {
	mips, err := ResolveMipLevels(desc)
	if err != nil {
		return 0, err
	}
	layers := desc.Layers()

	var total uint64
	for level := range mips {
		l, err := c.CalcSubresourceLayout(desc.Format, MipExtent(desc.Type, desc.Extent, level), layers)
		if err != nil {
			return 0, err
		}
		total += l.DataSize
	}
	return total, nil
}

// GetClampedSamples clamps samples into [1, MaxSamples()].
func (c *Calculator) GetClampedSamples(samples int) uint32 {
	if samples < 1 {
		return 1
	}
	if uint64(samples) > uint64(c.maxSamples) {
		return c.maxSamples
	}
	return uint32(samples)
}

// CalcSubresourceLayout calls Default().CalcSubresourceLayout.
func CalcSubresourceLayout(f format.Format, extent resource.Extent3D, numArrayLayers uint32) (SubresourceLayout, error) {
	return defaultCalculator.CalcSubresourceLayout(f, extent, numArrayLayers)
}

// GetClampedSamples clamps samples into [1, MaxSamples].
func GetClampedSamples(samples int) uint32 {
	return defaultCalculator.GetClampedSamples(samples)
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

func alignUp(n, alignment uint64) uint64 {
	if alignment <= 1 {
		return n
	}
	return (n + alignment - 1) / alignment * alignment
}
