// Package pqhdr converts SDR raster images into 16-bit PQ (SMPTE ST 2084) HDR PNGs.
//
// The conversion decodes sRGB samples to linear light, applies a multiplicative
// luminance gain field (global gain, radial boost, mask boost), encodes the result
// with the PQ OETF and quantizes it to 16 bits per channel. The output PNG carries
// an ICC profile copied verbatim from a reference HDR PNG, so viewers treat the
// content as HDR.
package pqhdr
