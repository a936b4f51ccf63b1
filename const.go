package pqhdr

const (
	sdrWhiteNits = 203.0
	pqMaxNits    = 10000.0
)

// ST 2084 constants.
const (
	pqM1 = 2610.0 / 16384.0
	pqM2 = 2523.0 / 4096.0 * 128.0
	pqC1 = 3424.0 / 4096.0
	pqC2 = 2413.0 / 4096.0 * 32.0
	pqC3 = 2392.0 / 4096.0 * 32.0
)

const (
	defaultGain            = 1.0
	defaultNits            = pqMaxNits
	defaultRadialGain      = 2.0
	defaultFalloff         = 50
	defaultMaskGain        = 100.0
	defaultDenoiseStrength = 7
	defaultReference       = "flashbang-hdr.png"
	defaultProfileName     = "PQ HDR"
)

const (
	minDenoiseStrength = 1
	maxDenoiseStrength = 10
)
