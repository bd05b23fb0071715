// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command rhiinfo lists render system modules and prints texture layouts.
//
// Usage:
//
//	rhiinfo                         list registered modules
//	rhiinfo -formats                print the format table
//	rhiinfo -format BC1UNorm -size 256x256 -backend WebGPU
//	                                print the mip layouts of a texture
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/backend/dynlib"
	_ "github.com/gogpu/rhi/backend/software"
	_ "github.com/gogpu/rhi/backend/wgpu"
	"github.com/gogpu/rhi/config"
	"github.com/gogpu/rhi/format"
	"github.com/gogpu/rhi/layout"
	"github.com/gogpu/rhi/resource"
)

func main() {
	var (
		configPath = flag.String("config", "", "host config file (.yaml or .toml)")
		formats    = flag.Bool("formats", false, "print the format table")
		formatName = flag.String("format", "", "texture format to lay out")
		size       = flag.String("size", "256x256", "texture extent WxH or WxHxD")
		typeName   = flag.String("type", "2D", "texture type")
		layers     = flag.Uint("layers", 0, "array layers (0 for the type default)")
		moduleName = flag.String("backend", "", "module to instantiate (empty for the best available)")
		create     = flag.Bool("create", false, "create the texture on the selected backend")
	)
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		rhi.SetLogger(cfg.Logger(os.Stderr))
		dynlib.RegisterConfig(backend.Default(), cfg)
		cfg.ApplyBackendOrder(backend.Default())
	} else if err := cfg.Normalize(); err != nil {
		log.Fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if *formats {
		printFormats(w)
		return
	}
	if *formatName == "" {
		printModules(w)
		return
	}

	desc, err := textureDescriptor(*formatName, *size, *typeName, uint32(*layers))
	if err != nil {
		log.Fatal(err)
	}

	rsDesc := &backend.RenderSystemDescriptor{Debug: cfg.Debug, MaxSamples: cfg.MaxSamples}
	var rs backend.RenderSystem
	if *moduleName == "" {
		rs, err = backend.InstantiateDefault(rsDesc)
	} else {
		rs, err = backend.Instantiate(*moduleName, rsDesc)
	}
	if err != nil {
		log.Fatalf("Failed to instantiate backend: %v", err)
	}
	defer func() {
		if err := rs.Release(); err != nil {
			log.Printf("Release: %v", err)
		}
	}()

	calc := layout.NewCalculator(nil, layout.WithMaxSamples(cfg.MaxSamples))
	if err := printLayouts(w, calc, rs.RendererID(), desc); err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(w, "\nrenderer\t%s (%v)\n", rs.Name(), rs.RendererID())

	if *create {
		tex, err := rs.CreateTexture(desc, nil)
		if err != nil {
			log.Fatalf("CreateTexture: %v", err)
		}
		got := tex.Descriptor()
		fmt.Fprintf(w, "created\t%s %v %dx%dx%d, %d mips\n", got.Type, got.Format,
			got.Extent.Width, got.Extent.Height, got.Extent.Depth, got.MipLevels)
		if err := rs.ReleaseTexture(tex); err != nil {
			log.Printf("ReleaseTexture: %v", err)
		}
	}
}

func printFormats(w *tabwriter.Writer) {
	fmt.Fprintln(w, "FORMAT\tBLOCK\tBYTES\tCOMPONENTS\tDATA TYPE\tWEBGPU")
	for _, f := range format.DefaultTable().Formats() {
		info, _ := format.DefaultTable().Lookup(f)
		webgpu := "-"
		if tf, ok := f.TextureFormat(); ok {
			webgpu = fmt.Sprint(tf)
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%v\t%s\n", info.Name, info.BlockWidth, info.BlockHeight,
			info.BlockSize, info.Components, info.DataType, webgpu)
	}
}

func printModules(w *tabwriter.Writer) {
	available := make(map[string]bool)
	for _, name := range backend.Available() {
		available[name] = true
	}
	fmt.Fprintln(w, "MODULE\tPRIORITY\tAVAILABLE\tRENDERER\tBUILD")
	for _, name := range backend.List() {
		e, _ := backend.Default().Get(name)
		renderer, build := "-", "-"
		if available[name] {
			info, err := backend.Info(name)
			if err != nil {
				renderer = err.Error()
			} else {
				renderer = fmt.Sprintf("%s (%v)", info.RendererName, info.RendererID)
				build = fmt.Sprint(info.BuildID)
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\t%s\n", name, e.Priority, available[name], renderer, build)
	}
}

func textureDescriptor(formatName, size, typeName string, layers uint32) (*resource.TextureDescriptor, error) {
	f, ok := format.Parse(formatName)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", formatName)
	}
	typ, ok := resource.ParseTextureType(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown texture type %q", typeName)
	}
	ext := resource.Extent3D{Depth: 1}
	if n, _ := fmt.Sscanf(size, "%dx%dx%d", &ext.Width, &ext.Height, &ext.Depth); n < 2 {
		if _, err := fmt.Sscanf(size, "%d", &ext.Width); err != nil {
			return nil, fmt.Errorf("invalid size %q", size)
		}
		ext.Height = 1
	}
	desc := &resource.TextureDescriptor{
		Label:       "rhiinfo",
		Type:        typ,
		Format:      f,
		Extent:      ext,
		ArrayLayers: layers,
		BindFlags:   resource.BindSampled,
	}
	if err := desc.Validate(nil); err != nil {
		return nil, err
	}
	return desc, nil
}

func printLayouts(w *tabwriter.Writer, calc *layout.Calculator, id rhi.RendererID, desc *resource.TextureDescriptor) error {
	mips, err := layout.ResolveMipLevels(desc)
	if err != nil {
		return err
	}
	align := layout.AlignmentFor(id)
	fmt.Fprintln(w, "MIP\tEXTENT\tROW\tLAYER\tSIZE\tALIGNED ROW\tALIGNED SIZE")
	for mip := range mips {
		ext := layout.MipExtent(desc.Type, desc.Extent, mip)
		l, err := calc.CalcSubresourceLayout(desc.Format, ext, desc.Layers())
		if err != nil {
			return err
		}
		a, err := calc.CalcAlignedSubresourceLayout(desc.Format, ext, desc.Layers(), align)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%dx%dx%d\t%d\t%d\t%d\t%d\t%d\n", mip, ext.Width, ext.Height, ext.Depth,
			l.RowStride, l.LayerStride, l.DataSize, a.RowStride, a.DataSize)
	}
	total, err := calc.TextureDataSize(desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "total\t\t\t\t%d\n", total)
	return nil
}
