package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vearutop/pqhdr"
	"github.com/vearutop/pqhdr/internal/pngx"
)

// printReport prints a conversion summary, framed when fancy is set.
func printReport(w io.Writer, r *pqhdr.Report, fancy bool) {
	rule := strings.Repeat("=", 50)
	if fancy {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "HDR Convert")
		fmt.Fprintln(w, rule)
	}
	c := r.Config
	fmt.Fprintf(w, "Input:       %s\n", r.Input)
	fmt.Fprintf(w, "Size:        %d x %d\n", r.Width, r.Height)
	fmt.Fprintf(w, "Mode:        %s\n", r.ColorModel)
	fmt.Fprintf(w, "Gain:        %g\n", c.Gain)
	fmt.Fprintf(w, "Nits:        %g (%.1fx reference white)\n", c.Nits, r.Headroom)
	if c.RadialRadius != nil {
		fmt.Fprintf(w, "Radial:      radius=%gpx, outer=%gx, falloff=%gpx\n", *c.RadialRadius, c.RadialGain, c.Falloff)
	}
	if c.MaskPath != "" {
		fmt.Fprintf(w, "Mask:        %s, gain=%gx\n", c.MaskPath, c.MaskGain)
	}
	if c.Denoise {
		p := pqhdr.DenoiseParamsFor(c.DenoiseStrength)
		fmt.Fprintf(w, "Denoise:     strength=%d (d=%d, sigma=%g)\n", p.Strength, p.Diameter, p.SigmaColor)
	}
	fmt.Fprintf(w, "ICC Profile: %s (%d bytes)\n", r.ProfileName, r.ProfileSize)
	fmt.Fprintf(w, "Output:      %s\n", r.Output)
	if fancy {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "Done!")
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "## %s:\n", title)
	fmt.Fprintln(w, strings.Repeat("-", 40))
}

func printAnalysis(w io.Writer, name string, a *pqhdr.Analysis) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PNG HDR Format Analyzer")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "File: %s\n", name)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	section(w, "Chunks Found")
	for _, c := range a.Chunks {
		kind := "Ancillary"
		if c.Critical {
			kind = "Critical"
		}
		fmt.Fprintf(w, "  %-6s - %8d bytes (%s)\n", c.Type, c.Length, kind)
	}
	fmt.Fprintln(w)

	h := a.Header
	section(w, "Image Header (IHDR)")
	fmt.Fprintf(w, "  Dimensions:    %d x %d\n", h.Width, h.Height)
	fmt.Fprintf(w, "  Bit Depth:     %d\n", h.BitDepth)
	fmt.Fprintf(w, "  Color Type:    %d (%s)\n", h.ColorType, h.ColorTypeName())
	fmt.Fprintf(w, "  Compression:   %d\n", h.CompressionMethod)
	fmt.Fprintf(w, "  Filter:        %d\n", h.FilterMethod)
	fmt.Fprintf(w, "  Interlace:     %d\n", h.Interlace)
	fmt.Fprintln(w)

	if a.Gamma != nil {
		section(w, "Gamma (gAMA)")
		fmt.Fprintf(w, "  Gamma Value:   %.5f\n", *a.Gamma)
		fmt.Fprintln(w)
	}
	if c := a.Chromaticities; c != nil {
		section(w, "Chromaticity (cHRM)")
		fmt.Fprintf(w, "  White Point:   (%.5f, %.5f)\n", c.WhiteX, c.WhiteY)
		fmt.Fprintf(w, "  Red Primary:   (%.5f, %.5f)\n", c.RedX, c.RedY)
		fmt.Fprintf(w, "  Green Primary: (%.5f, %.5f)\n", c.GreenX, c.GreenY)
		fmt.Fprintf(w, "  Blue Primary:  (%.5f, %.5f)\n", c.BlueX, c.BlueY)
		fmt.Fprintln(w)
	}
	if a.SRGBIntent != nil {
		section(w, "sRGB Rendering Intent")
		fmt.Fprintf(w, "  Intent:        %d (%s)\n", *a.SRGBIntent, pngx.RenderingIntentName(uint32(*a.SRGBIntent)))
		fmt.Fprintln(w)
	}
	if c := a.CICP; c != nil {
		section(w, "Coding-Independent Code Points (cICP) [HDR]")
		fmt.Fprintf(w, "  Color Primaries:          %d (%s)\n", c.ColorPrimaries, c.PrimariesName())
		fmt.Fprintf(w, "  Transfer Characteristics: %d (%s)\n", c.TransferCharacteristics, c.TransferName())
		fmt.Fprintf(w, "  Matrix Coefficients:      %d (%s)\n", c.MatrixCoefficients, c.MatrixName())
		fmt.Fprintf(w, "  Video Full Range:         %d (%s)\n", c.VideoFullRange, c.RangeName())
		fmt.Fprintln(w)
	}
	if p := a.ICC; p != nil {
		section(w, "ICC Profile (iCCP)")
		fmt.Fprintf(w, "  Profile Name:     %s\n", p.Name)
		fmt.Fprintf(w, "  Compression:      %d\n", p.CompressionMethod)
		fmt.Fprintf(w, "  Compressed Size:  %d bytes\n", p.CompressedSize)
		fmt.Fprintf(w, "  Decompressed:     %d bytes\n", p.Size)
		if p.Version != "" {
			fmt.Fprintf(w, "  ICC Version:      %s\n", p.Version)
			fmt.Fprintf(w, "  Device Class:     %s\n", p.DeviceClass)
			fmt.Fprintf(w, "  Color Space:      %s\n", p.ColorSpace)
			fmt.Fprintf(w, "  PCS:              %s\n", p.PCS)
			fmt.Fprintf(w, "  Creation Date:    %s\n", p.Created.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "  Platform:         %s\n", p.Platform)
			fmt.Fprintf(w, "  Rendering Intent: %s\n", p.RenderingIntent)
		}
		if p.Err != nil {
			fmt.Fprintf(w, "  Error:            %v\n", p.Err)
		}
		fmt.Fprintln(w)
	}
	if m := a.MDCV; m != nil {
		section(w, "Mastering Display Color Volume (mDCv) [HDR]")
		fmt.Fprintf(w, "  Red Primary:      (%.4f, %.4f)\n", m.RedX, m.RedY)
		fmt.Fprintf(w, "  Green Primary:    (%.4f, %.4f)\n", m.GreenX, m.GreenY)
		fmt.Fprintf(w, "  Blue Primary:     (%.4f, %.4f)\n", m.BlueX, m.BlueY)
		fmt.Fprintf(w, "  White Point:      (%.4f, %.4f)\n", m.WhiteX, m.WhiteY)
		fmt.Fprintf(w, "  Max Luminance:    %.2f cd/m²\n", m.MaxLuminance)
		fmt.Fprintf(w, "  Min Luminance:    %.6f cd/m²\n", m.MinLuminance)
		fmt.Fprintln(w)
	}
	if l := a.CLLI; l != nil {
		section(w, "Content Light Level Info (cLLi) [HDR]")
		fmt.Fprintf(w, "  MaxCLL:           %d cd/m²\n", l.MaxCLL)
		fmt.Fprintf(w, "  MaxFALL:          %d cd/m²\n", l.MaxFALL)
		fmt.Fprintln(w)
	}

	section(w, "HDR Summary")
	if !a.HDR {
		fmt.Fprintln(w, "  HDR Content:      NO (Standard SDR)")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "  HDR Content:      YES")
	if a.HDRType != "" {
		fmt.Fprintf(w, "  HDR Type:         %s\n", a.HDRType)
	}
	if a.HighBitDepth {
		fmt.Fprintln(w, "  High Bit Depth:   16-bit")
	}
	if a.Gamut != "" {
		fmt.Fprintf(w, "  Color Gamut:      %s\n", a.Gamut)
	}
	fmt.Fprintln(w)
}
